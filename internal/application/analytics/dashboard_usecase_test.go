package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-inventory/internal/application/analytics"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/memory"
)

func seed(t *testing.T, repo *memory.ProductRepo, quantities ...int) {
	t.Helper()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, q := range quantities {
		err := repo.Create(context.Background(), &entity.Product{
			ID:           uuid.NewString(),
			ProductID:    fmt.Sprintf("P-%02d", i),
			Name:         fmt.Sprintf("Producto %d", i),
			CostPrice:    decimal.NewFromInt(2),
			SellingPrice: decimal.NewFromInt(5),
			Quantity:     q,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestDashboard_GetSummary(t *testing.T) {
	repo := memory.NewProductRepository()
	seed(t, repo, 0, 3, 9, 10, 25, 0, 1)

	got, err := analytics.NewDashboardUseCase(repo).GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, got.TotalProducts)
	assert.Equal(t, 2, got.OutOfStock)
	assert.Equal(t, 3, got.LowStock)
	assert.Equal(t, 2, got.InStock)
	assert.Equal(t, 48, got.TotalUnits)
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(240)), got.TotalValue.String())
	assert.True(t, got.TotalCost.Equal(decimal.NewFromInt(96)))
	assert.True(t, got.PotentialProfit.Equal(decimal.NewFromInt(144)))

	require.Len(t, got.Recent, 5)
	assert.Equal(t, "P-06", got.Recent[0].ProductID, "el más reciente va primero")
	assert.False(t, got.GeneratedAt.IsZero())
}

func TestDashboard_InventarioVacio(t *testing.T) {
	got, err := analytics.NewDashboardUseCase(memory.NewProductRepository()).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalProducts)
	assert.Empty(t, got.Recent)
	assert.True(t, got.TotalValue.IsZero())
}

type fakeGenerator struct {
	got analytics.InventoryReport
	err error
}

func (f *fakeGenerator) GenerateInventoryPDF(_ context.Context, r analytics.InventoryReport) ([]byte, error) {
	f.got = r
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func TestReport_InventoryPDF(t *testing.T) {
	repo := memory.NewProductRepository()
	seed(t, repo, 4, 12)
	gen := &fakeGenerator{}

	pdf, filename, err := analytics.NewReportUseCase(repo, gen, "Mi Tienda").InventoryPDF(context.Background(), "alice")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.True(t, strings.HasPrefix(filename, "inventario-"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, "Mi Tienda", gen.got.Title)
	assert.Equal(t, "alice", gen.got.GeneratedBy)
	assert.Len(t, gen.got.Products, 2)
	assert.Equal(t, 1, gen.got.Summary.LowStock)
	assert.Equal(t, 1, gen.got.Summary.InStock)
}

func TestReport_ErrorDelGenerador(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := analytics.NewReportUseCase(memory.NewProductRepository(), &fakeGenerator{err: boom}, "x").
		InventoryPDF(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
}
