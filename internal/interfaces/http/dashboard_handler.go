package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/shop-inventory/internal/application/analytics"
	"github.com/jhoicas/shop-inventory/internal/application/dto"
)

// DashboardHandler maneja el resumen del inventario y el reporte PDF.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Conteos por estado de stock, valor total y los 5 productos más recientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.InventorySummaryDTO}
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(summary))
}

// InventoryReport godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.Envelope
// @Router       /api/reports/inventory.pdf [get]
func (h *DashboardHandler) InventoryReport(c *fiber.Ctx) error {
	pdf, filename, err := h.report.InventoryPDF(c.UserContext(), GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
