package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo almacén de productos con índice único por ProductID.
type ProductRepo struct {
	mu          sync.RWMutex
	byID        map[string]*entity.Product
	byProductID map[string]string
	now         func() time.Time
}

// NewProductRepository construye un almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{
		byID:        make(map[string]*entity.Product),
		byProductID: make(map[string]string),
		now:         time.Now,
	}
}

// Create persiste un nuevo producto con Version = 1.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byProductID[product.ProductID]; ok {
		return domain.ErrProductIDExists
	}
	if _, ok := r.byID[product.ID]; ok {
		return domain.ErrDuplicate
	}
	product.Version = 1
	p := *product
	r.byID[p.ID] = &p
	r.byProductID[p.ProductID] = p.ID
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyOf(id), nil
}

// GetByProductID obtiene un producto por su código de negocio.
func (r *ProductRepo) GetByProductID(_ context.Context, productID string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyOf(r.byProductID[productID]), nil
}

// List devuelve todos los productos, más recientes primero.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	list := make([]*entity.Product, 0, len(r.byID))
	for id := range r.byID {
		list = append(list, r.copyOf(id))
	}
	r.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ProductID > list[j].ProductID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Update reemplaza el producto si la versión coincide.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if stored.Version != product.Version {
		return domain.ErrVersionConflict
	}
	product.Version++
	product.UpdatedAt = r.now()
	product.ProductID = stored.ProductID
	product.CreatedAt = stored.CreatedAt
	p := *product
	r.byID[p.ID] = &p
	return nil
}

// UpdateQuantity cambia solo la cantidad.
func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	stored.Quantity = quantity
	stored.Version++
	stored.UpdatedAt = r.now()
	c := *stored
	return &c, nil
}

func (r *ProductRepo) copyOf(id string) *entity.Product {
	p, ok := r.byID[id]
	if !ok {
		return nil
	}
	c := *p
	return &c
}
