package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
)

// InventoryReport datos que recibe el generador del PDF.
type InventoryReport struct {
	Title       string
	GeneratedAt time.Time
	GeneratedBy string
	Products    []*entity.Product
	Summary     inventory.Summary
}

// InventoryPDFGenerator puerto para generar la representación PDF del inventario.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report InventoryReport) ([]byte, error)
}
