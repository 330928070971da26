package repository

import (
	"context"

	"github.com/jhoicas/shop-inventory/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByProductID(ctx context.Context, productID string) (*entity.Product, error)
	// List devuelve todos los productos ordenados por fecha de creación descendente.
	List(ctx context.Context) ([]*entity.Product, error)
	// Update persiste product solo si la versión almacenada coincide con product.Version;
	// en ese caso incrementa Version y refresca UpdatedAt. Si no coincide devuelve domain.ErrVersionConflict.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity cambia únicamente quantity (y updated_at/version) en una sola sentencia.
	UpdateQuantity(ctx context.Context, id string, quantity int) (*entity.Product, error)
}
