package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF del inventario completo.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	generator   InventoryPDFGenerator
	title       string
}

// NewReportUseCase construye el caso de uso. title aparece en la cabecera del documento.
func NewReportUseCase(productRepo repository.ProductRepository, generator InventoryPDFGenerator, title string) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, generator: generator, title: title}
}

// InventoryPDF devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, requestedBy string) ([]byte, string, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar productos: %w", err)
	}
	now := time.Now()
	pdf, err := uc.generator.GenerateInventoryPDF(ctx, InventoryReport{
		Title:       uc.title,
		GeneratedAt: now,
		GeneratedBy: requestedBy,
		Products:    products,
		Summary:     inventory.Summarize(products),
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("inventario-%s.pdf", now.Format("20060102-1504")), nil
}
