package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/memory"
)

type fixedCodes struct{ n int }

func (f *fixedCodes) Next() string {
	f.n++
	return "PRD-TEST-" + string(rune('0'+f.n))
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

func newProducts(t *testing.T) (*usecase.ProductUseCase, *memory.ProductRepo) {
	t.Helper()
	repo := memory.NewProductRepository()
	return usecase.NewProductUseCase(repo, &fixedCodes{}), repo
}

func createWidget(t *testing.T, uc *usecase.ProductUseCase) *dto.ProductResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		ProductID:    "W-1",
		Name:         "Widget",
		CostPrice:    dec("2.50"),
		SellingPrice: dec("4.00"),
		Quantity:     intp(7),
		Category:     "Tools",
	})
	require.NoError(t, err)
	return p
}

func TestProductCreate(t *testing.T) {
	uc, _ := newProducts(t)
	p := createWidget(t, uc)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "W-1", p.ProductID)
	assert.Equal(t, 7, p.Quantity)
	assert.Equal(t, "Low Stock", p.StockStatus)
	assert.Equal(t, 1, p.Version)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("2.5")))
}

func TestProductCreate_GeneraProductIDYCantidadCero(t *testing.T) {
	uc, _ := newProducts(t)
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Sin código",
		CostPrice:    dec("1"),
		SellingPrice: dec("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PRD-TEST-1", p.ProductID)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, "Out of Stock", p.StockStatus)
}

func TestProductCreate_ProductIDDuplicado(t *testing.T) {
	uc, _ := newProducts(t)
	createWidget(t, uc)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		ProductID:    "W-1",
		Name:         "Otro",
		CostPrice:    dec("1"),
		SellingPrice: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductIDExists)
}

func TestProductCreate_ValoresNegativos(t *testing.T) {
	uc, _ := newProducts(t)
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Malo",
		CostPrice:    dec("-1"),
		SellingPrice: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNegativeValue)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Malo",
		CostPrice:    dec("1"),
		SellingPrice: dec("1"),
		Quantity:     intp(-3),
	})
	assert.ErrorIs(t, err, domain.ErrNegativeValue)
}

func TestProductGetByID(t *testing.T) {
	uc, _ := newProducts(t)
	created := createWidget(t, uc)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ProductID, got.ProductID)

	_, err = uc.GetByID(context.Background(), "no-es-un-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = uc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdateStock_Idempotente(t *testing.T) {
	uc, _ := newProducts(t)
	created := createWidget(t, uc)

	first, err := uc.UpdateStock(context.Background(), created.ID, dto.UpdateStockRequest{Quantity: intp(0)})
	require.NoError(t, err)
	second, err := uc.UpdateStock(context.Background(), created.ID, dto.UpdateStockRequest{Quantity: intp(0)})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Quantity)
	assert.Equal(t, 0, second.Quantity)
	assert.Equal(t, "Out of Stock", second.StockStatus)
	assert.Equal(t, created.Name, second.Name, "solo cambia la cantidad")
	assert.True(t, second.SellingPrice.Equal(created.SellingPrice))
}

func TestProductUpdateStock_Errores(t *testing.T) {
	uc, _ := newProducts(t)
	created := createWidget(t, uc)

	_, err := uc.UpdateStock(context.Background(), created.ID, dto.UpdateStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.UpdateStock(context.Background(), created.ID, dto.UpdateStockRequest{Quantity: intp(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.UpdateStock(context.Background(), "xyz", dto.UpdateStockRequest{Quantity: intp(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = uc.UpdateStock(context.Background(), uuid.NewString(), dto.UpdateStockRequest{Quantity: intp(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdate_ParcialSoloCantidad(t *testing.T) {
	uc, _ := newProducts(t)
	created := createWidget(t, uc)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{Quantity: intp(15)})
	require.NoError(t, err)

	assert.Equal(t, 15, updated.Quantity)
	assert.Equal(t, "In Stock", updated.StockStatus)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "Tools", updated.Category)
	assert.Equal(t, "W-1", updated.ProductID)
	assert.True(t, updated.CostPrice.Equal(created.CostPrice))
	assert.Equal(t, created.Version+1, updated.Version)
}

func TestProductUpdate_Campos(t *testing.T) {
	uc, _ := newProducts(t)
	created := createWidget(t, uc)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:         strp("Widget Pro"),
		SellingPrice: dec("5.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.True(t, updated.SellingPrice.Equal(decimal.RequireFromString("5.25")))
	assert.Equal(t, 7, updated.Quantity)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{Name: strp("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{CostPrice: dec("-0.01")})
	assert.ErrorIs(t, err, domain.ErrNegativeValue)
}

func TestProductUpdate_ConflictoDeVersion(t *testing.T) {
	uc, _ := newProducts(t)
	created := createWidget(t, uc)

	_, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Quantity: intp(1),
		Version:  intp(created.Version),
	})
	require.NoError(t, err)

	// Segunda escritura con la versión ya consumida.
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Quantity: intp(2),
		Version:  intp(created.Version),
	})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestProductList_MasRecientesPrimero(t *testing.T) {
	uc, _ := newProducts(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{
			Name: name, CostPrice: dec("1"), SellingPrice: dec("2"),
		})
		require.NoError(t, err)
	}

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}
}
