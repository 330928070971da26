package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
)

// CodeGenerator genera códigos de producto cuando el cliente no envía productId.
type CodeGenerator interface {
	Next() string
}

// ProductUseCase casos de uso CRUD para productos (sin borrado).
type ProductUseCase struct {
	repo  repository.ProductRepository
	codes CodeGenerator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, codes CodeGenerator) *ProductUseCase {
	if codes == nil {
		codes = inventory.NewCodeGenerator()
	}
	return &ProductUseCase{repo: repo, codes: codes}
}

// Create crea un nuevo producto. Quantity inicia en 0 si no se envía; si no hay productId se genera.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CostPrice == nil || in.SellingPrice == nil {
		return nil, domain.ErrInvalidInput
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID != "" {
		existing, err := uc.repo.GetByProductID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrProductIDExists
		}
	} else {
		productID = uc.codes.Next()
	}
	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		CostPrice:    *in.CostPrice,
		SellingPrice: *in.SellingPrice,
		Quantity:     quantity,
		Category:     strings.TrimSpace(in.Category),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if product.HasNegativeValues() {
		return nil, domain.ErrNegativeValue
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista todos los productos, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// UpdateStock cambia solo la cantidad del producto.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity == nil || *in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	product, err := uc.repo.UpdateQuantity(ctx, id, *in.Quantity)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza parcialmente un producto: cada campo presente sobrescribe el almacenado y
// los ausentes se conservan. La escritura es condicional a la versión leída.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Version != nil && *in.Version != product.Version {
		return nil, domain.ErrVersionConflict
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if product.HasNegativeValues() {
		return nil, domain.ErrNegativeValue
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// ValidateID verifica que id tenga formato UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

// ToProductResponse mapea la entidad al DTO, incluyendo el estado de stock derivado.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
		Category:     p.Category,
		StockStatus:  string(inventory.StatusFor(p.Quantity)),
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductEntity reconstruye la entidad desde el DTO (usado por reportes y clientes).
func ToProductEntity(r dto.ProductResponse) *entity.Product {
	return &entity.Product{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Name:         r.Name,
		Description:  r.Description,
		CostPrice:    r.CostPrice,
		SellingPrice: r.SellingPrice,
		Quantity:     r.Quantity,
		Category:     r.Category,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
