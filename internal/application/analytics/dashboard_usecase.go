// Package analytics contiene los casos de uso de lectura sobre el inventario:
// el resumen del dashboard y el reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
)

const dashboardRecentProducts = 5 // productos recientes en el widget del dashboard

// DashboardUseCase genera el resumen del inventario (conteos por estado y valor total).
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, now: time.Now}
}

// GetSummary carga todos los productos y calcula los agregados con inventory.Summarize.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar productos: %w", err)
	}
	s := inventory.Summarize(products)

	recent := make([]dto.ProductResponse, 0, dashboardRecentProducts)
	for i, p := range products {
		if i == dashboardRecentProducts {
			break
		}
		recent = append(recent, *usecase.ToProductResponse(p))
	}

	return &dto.InventorySummaryDTO{
		TotalProducts:   s.TotalProducts,
		InStock:         s.InStock,
		LowStock:        s.LowStock,
		OutOfStock:      s.OutOfStock,
		TotalUnits:      s.TotalUnits,
		TotalValue:      s.TotalValue.Round(2),
		TotalCost:       s.TotalCost.Round(2),
		PotentialProfit: s.PotentialProfit.Round(2),
		Recent:          recent,
		GeneratedAt:     uc.now(),
	}, nil
}
