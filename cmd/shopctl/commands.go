package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/client"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
)

func (a *app) registerCmd() *cobra.Command {
	var in dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Crear una cuenta e iniciar sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.startSession(resp)
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "nombre de usuario")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña (mín. 6 caracteres)")
	cmd.Flags().StringVar(&in.Role, "role", "employee", "rol: admin o employee")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var in dto.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.startSession(resp)
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) startSession(resp *dto.AuthResponse) error {
	sess := client.SessionFrom(resp)
	if err := a.store.Save(sess); err != nil {
		return err
	}
	a.session = sess
	a.api.SetToken(sess.Token)
	fmt.Fprintf(a.out, "Sesión iniciada como %s (%s)\n", sess.User.Username, sess.User.Role)
	return nil
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.session = &client.Session{}
			fmt.Fprintln(a.out, "Sesión cerrada")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar el usuario de la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			u, err := a.api.Me(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			fmt.Fprintf(a.out, "%s <%s> rol=%s id=%s\n", u.Username, u.Email, u.Role, u.ID)
			return nil
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen del inventario y productos recientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			summary, err := a.api.Summary(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			fmt.Fprintf(a.out, "Hola, %s\n\n", a.session.User.Username)
			return client.RenderDashboard(a.out, summary)
		},
	}
}

func (a *app) inventoryCmd() *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Listar productos con búsqueda y filtro por estado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			var st inventory.StockStatus
			if status != "" {
				parsed, ok := inventory.ParseStatus(status)
				if !ok {
					return fmt.Errorf("estado inválido %q: use in, low u out", status)
				}
				st = parsed
			}
			products, err := a.api.ListProducts(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			filtered := client.FilterProducts(products, search, st)
			if len(filtered) == 0 {
				fmt.Fprintln(a.out, "No se encontraron productos")
				return nil
			}
			if err := client.RenderProducts(a.out, filtered); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "\n%d de %d productos\n", len(filtered), len(products))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "texto a buscar en nombre o categoría")
	cmd.Flags().StringVar(&status, "status", "", "in, low u out")
	return cmd
}

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Consultar y modificar productos",
	}
	cmd.AddCommand(a.productGetCmd(), a.productAddCmd(), a.productEditCmd(), a.productStockCmd())
	return cmd
}

func (a *app) productGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Ver un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			p, err := a.api.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return a.check(err)
			}
			return client.RenderProduct(a.out, p)
		},
	}
}

func (a *app) productAddCmd() *cobra.Command {
	var (
		in            dto.CreateProductRequest
		cost, selling string
		quantity      int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crear un producto (solo admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if !a.session.IsAdmin() {
				return errors.New("solo un administrador puede crear productos")
			}
			c, err := parsePrice("cost", cost)
			if err != nil {
				return err
			}
			s, err := parsePrice("price", selling)
			if err != nil {
				return err
			}
			in.CostPrice, in.SellingPrice = &c, &s
			if cmd.Flags().Changed("quantity") {
				in.Quantity = &quantity
			}
			p, err := a.api.CreateProduct(cmd.Context(), in)
			if err != nil {
				return a.check(err)
			}
			fmt.Fprintf(a.out, "Producto creado: %s (%s)\n", p.Name, p.ProductID)
			return client.RenderProduct(a.out, p)
		},
	}
	cmd.Flags().StringVar(&in.ProductID, "product-id", "", "código; se genera si se omite")
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&in.Description, "description", "", "descripción")
	cmd.Flags().StringVar(&in.Category, "category", "", "categoría")
	cmd.Flags().StringVar(&cost, "cost", "", "precio de costo")
	cmd.Flags().StringVar(&selling, "price", "", "precio de venta")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "cantidad inicial")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (a *app) productEditCmd() *cobra.Command {
	var (
		name, description, category, cost, selling string
		quantity, version                          int
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Modificar campos de un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			flags := cmd.Flags()
			var in dto.UpdateProductRequest
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("description") {
				in.Description = &description
			}
			if flags.Changed("category") {
				in.Category = &category
			}
			if flags.Changed("cost") {
				c, err := parsePrice("cost", cost)
				if err != nil {
					return err
				}
				in.CostPrice = &c
			}
			if flags.Changed("price") {
				s, err := parsePrice("price", selling)
				if err != nil {
					return err
				}
				in.SellingPrice = &s
			}
			if flags.Changed("quantity") {
				in.Quantity = &quantity
			}
			if flags.Changed("version") {
				in.Version = &version
			}
			if in == (dto.UpdateProductRequest{}) {
				return errors.New("indique al menos un campo a modificar")
			}

			if _, err := a.api.UpdateProduct(cmd.Context(), args[0], in); err != nil {
				return a.check(err)
			}
			fmt.Fprintln(a.out, "Producto actualizado")

			// La vista se recarga desde el servidor.
			products, err := a.api.ListProducts(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			return client.RenderProducts(a.out, products)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nombre")
	cmd.Flags().StringVar(&description, "description", "", "descripción")
	cmd.Flags().StringVar(&category, "category", "", "categoría")
	cmd.Flags().StringVar(&cost, "cost", "", "precio de costo")
	cmd.Flags().StringVar(&selling, "price", "", "precio de venta")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "cantidad")
	cmd.Flags().IntVar(&version, "version", 0, "versión leída; rechaza la edición si otro usuario la cambió")
	return cmd
}

func (a *app) productStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock ID QUANTITY",
		Short: "Fijar la cantidad disponible",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil || qty < 0 {
				return domain.ErrInvalidQuantity
			}
			p, err := a.api.UpdateStock(cmd.Context(), args[0], qty)
			if err != nil {
				return a.check(err)
			}
			fmt.Fprintf(a.out, "%s: %d unidades (%s)\n", p.Name, p.Quantity, p.StockStatus)
			return nil
		},
	}
}

func (a *app) reportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Descargar el reporte de inventario en PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			pdf, err := a.api.InventoryReport(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("guardar reporte: %w", err)
			}
			fmt.Fprintf(a.out, "Reporte guardado en %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "inventario.pdf", "archivo de salida")
	return cmd
}

func parsePrice(flag, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: importe inválido %q", flag, v)
	}
	return d, nil
}
