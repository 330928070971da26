package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-inventory/internal/domain/entity"
)

// LowStockThreshold cantidad a partir de la cual un producto deja de estar en stock bajo.
const LowStockThreshold = 10

// StockStatus etiqueta derivada de la cantidad disponible (nunca se persiste).
type StockStatus string

const (
	StatusOutOfStock StockStatus = "Out of Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusInStock    StockStatus = "In Stock"
)

// StatusFor clasifica una cantidad: 0 → Out of Stock, 1..9 → Low Stock, ≥10 → In Stock.
func StatusFor(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ParseStatus acepta "out", "low", "in" o la etiqueta completa (sin distinguir mayúsculas).
func ParseStatus(s string) (StockStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "out", "out of stock", "out-of-stock":
		return StatusOutOfStock, true
	case "low", "low stock", "low-stock":
		return StatusLowStock, true
	case "in", "in stock", "in-stock":
		return StatusInStock, true
	}
	return "", false
}

// Summary agregados del inventario para el dashboard.
type Summary struct {
	TotalProducts   int
	InStock         int
	LowStock        int
	OutOfStock      int
	TotalUnits      int
	TotalValue      decimal.Decimal // Σ sellingPrice × quantity
	TotalCost       decimal.Decimal // Σ costPrice × quantity
	PotentialProfit decimal.Decimal // TotalValue - TotalCost
}

// Summarize calcula los agregados sobre la lista completa de productos.
func Summarize(products []*entity.Product) Summary {
	s := Summary{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
		TotalCost:     decimal.Zero,
	}
	for _, p := range products {
		switch StatusFor(p.Quantity) {
		case StatusOutOfStock:
			s.OutOfStock++
		case StatusLowStock:
			s.LowStock++
		default:
			s.InStock++
		}
		s.TotalUnits += p.Quantity
		s.TotalValue = s.TotalValue.Add(p.StockValue())
		s.TotalCost = s.TotalCost.Add(p.StockCost())
	}
	s.PotentialProfit = s.TotalValue.Sub(s.TotalCost)
	return s
}

// Filter devuelve los productos cuyo nombre o categoría contienen search (sin distinguir
// mayúsculas) y, si status no es vacío, cuyo estado de stock coincide. Conserva el orden.
func Filter(products []*entity.Product, search string, status StockStatus) []*entity.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		if status != "" && StatusFor(p.Quantity) != status {
			continue
		}
		out = append(out, p)
	}
	return out
}
