// seed crea el usuario administrador inicial y opcionalmente importa un catálogo de
// productos desde CSV (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed --email admin@tienda.co --password secreto [--catalog productos.csv]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/shop-inventory/internal/application/auth"
	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-inventory/pkg/config"
	"github.com/jhoicas/shop-inventory/pkg/logger"
)

type seedOptions struct {
	username string
	email    string
	password string
	catalog  string
	encoding string
}

func main() {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Crea el administrador inicial e importa productos",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.username, "username", "admin", "username del administrador")
	cmd.Flags().StringVar(&opts.email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&opts.password, "password", "", "contraseña del administrador (mín. 6)")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "CSV de productos a importar")
	cmd.Flags().StringVar(&opts.encoding, "encoding", encodingAuto, "codificación del CSV: auto, utf-8, latin1")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts seedOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	var items []dto.CreateProductRequest
	if opts.catalog != "" {
		raw, err := os.ReadFile(opts.catalog)
		if err != nil {
			return fmt.Errorf("abrir catálogo: %w", err)
		}
		if items, err = parseCatalog(raw, opts.encoding); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		return err
	}

	jwtCfg := auth.JWTConfig{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL(), Issuer: cfg.JWT.Issuer}
	var created, skipped int
	err = postgres.NewTxRunner(pool).Run(ctx, func(userRepo repository.UserRepository, productRepo repository.ProductRepository) error {
		authUC := auth.NewAuthUseCase(userRepo, jwtCfg, cfg.Auth.BcryptCost, log)
		_, err := authUC.Register(ctx, dto.RegisterRequest{
			Username: opts.username,
			Email:    opts.email,
			Password: opts.password,
			Role:     entity.RoleAdmin,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrUsernameTaken):
			log.Warn().Str("email", opts.email).Msg("administrador ya existe, se omite")
		case err != nil:
			return fmt.Errorf("crear administrador: %w", err)
		default:
			log.Info().Str("email", opts.email).Msg("administrador creado")
		}

		productUC := usecase.NewProductUseCase(productRepo, inventory.NewCodeGenerator())
		for _, item := range items {
			_, err := productUC.Create(ctx, item)
			if errors.Is(err, domain.ErrProductIDExists) {
				skipped++
				continue
			}
			if err != nil {
				return fmt.Errorf("producto %q: %w", item.Name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Catálogo: %d productos creados, %d omitidos (productId existente)\n", created, skipped)
	return nil
}
