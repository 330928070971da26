package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, product_id, name, description, cost_price, selling_price, quantity, category, version, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con version = 1.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.ProductID, product.Name, product.Description,
		product.CostPrice, product.SellingPrice, product.Quantity, product.Category,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "products_product_id_key" {
				return domain.ErrProductIDExists
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	product.Version = 1
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByProductID obtiene un producto por su código de negocio.
func (r *ProductRepo) GetByProductID(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID))
	if err != nil {
		return nil, fmt.Errorf("get product by product_id: %w", err)
	}
	return p, nil
}

// List devuelve todos los productos, más recientes primero.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, product_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update escribe todos los campos editables si la versión almacenada coincide con product.Version.
// product_id y created_at no se modifican.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $3, description = $4, cost_price = $5, selling_price = $6, quantity = $7, category = $8,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Version, product.Name, product.Description,
		product.CostPrice, product.SellingPrice, product.Quantity, product.Category,
	).Scan(&product.Version, &product.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update product: %w", err)
	}
	// Sin filas: o no existe o cambió la versión.
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, product.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}
	return domain.ErrVersionConflict
}

// UpdateQuantity cambia solo quantity en una única sentencia. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) (*entity.Product, error) {
	query := `
		UPDATE products SET quantity = $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, quantity))
	if err != nil {
		return nil, fmt.Errorf("update product quantity: %w", err)
	}
	return p, nil
}

// scanProduct lee una fila de productColumns. pgx.ErrNoRows se traduce a (nil, nil).
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.ProductID, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice,
		&p.Quantity, &p.Category, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
