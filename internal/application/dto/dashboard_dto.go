package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySummaryDTO respuesta de GET /api/dashboard/summary.
type InventorySummaryDTO struct {
	TotalProducts   int             `json:"totalProducts"`
	InStock         int             `json:"inStock"`
	LowStock        int             `json:"lowStock"`
	OutOfStock      int             `json:"outOfStock"`
	TotalUnits      int             `json:"totalUnits"`
	TotalValue      decimal.Decimal `json:"totalValue"`      // Σ sellingPrice × quantity
	TotalCost       decimal.Decimal `json:"totalCost"`       // Σ costPrice × quantity
	PotentialProfit decimal.Decimal `json:"potentialProfit"` // totalValue - totalCost

	// Productos más recientes (máx. 5) para el widget del dashboard
	Recent []ProductResponse `json:"recent"`

	GeneratedAt time.Time `json:"generatedAt"`
}
