package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de la tienda.
// ID es el identificador del registro (UUID, usado en las URLs); ProductID es el código
// de negocio único (ej. PRD1717171717171042) que se genera si no se informa al crear.
type Product struct {
	ID           string
	ProductID    string
	Name         string
	Description  string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Quantity     int
	Category     string
	Version      int // se incrementa en cada escritura (control optimista)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasNegativeValues indica si algún campo numérico viola la regla de no-negatividad.
func (p *Product) HasNegativeValues() bool {
	return p.CostPrice.IsNegative() || p.SellingPrice.IsNegative() || p.Quantity < 0
}

// StockValue valor de venta del stock disponible (sellingPrice × quantity).
func (p *Product) StockValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// StockCost costo del stock disponible (costPrice × quantity).
func (p *Product) StockCost() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
