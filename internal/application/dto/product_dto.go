package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	ProductID    string           `json:"productId" validate:"omitempty,max=100"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description" validate:"max=2000"`
	CostPrice    *decimal.Decimal `json:"costPrice" validate:"required,min=0"`
	SellingPrice *decimal.Decimal `json:"sellingPrice" validate:"required,min=0"`
	Quantity     *int             `json:"quantity" validate:"omitempty,min=0"`
	Category     string           `json:"category" validate:"max=100"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes se sobrescriben.
// Version es opcional; si se envía y no coincide con la almacenada la actualización se rechaza.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=2000"`
	Category     *string          `json:"category" validate:"omitempty,max=100"`
	CostPrice    *decimal.Decimal `json:"costPrice" validate:"omitempty,min=0"`
	SellingPrice *decimal.Decimal `json:"sellingPrice" validate:"omitempty,min=0"`
	Quantity     *int             `json:"quantity" validate:"omitempty,min=0"`
	Version      *int             `json:"version" validate:"omitempty,min=1"`
}

// UpdateStockRequest entrada para PATCH /products/:id/stock.
type UpdateStockRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// ProductResponse salida de un producto. StockStatus es derivado, no se persiste.
type ProductResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     int             `json:"quantity"`
	Category     string          `json:"category"`
	StockStatus  string          `json:"stockStatus"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
