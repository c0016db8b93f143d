package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
// sold_by se fija en el servidor con el usuario autenticado; cualquier valor
// enviado por el cliente se ignora. unit_price tampoco se acepta: siempre es
// el snapshot del precio del producto al momento de la transacción.
type CreateSaleRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

// UpdateSaleRequest entrada para corregir una venta. Campos nil no se tocan.
// Cambiar la cantidad re-liquida el stock del producto de forma atómica.
type UpdateSaleRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0"`
	Notes    *string `json:"notes"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             int64           `json:"id"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	ProductSKU     string          `json:"product_sku,omitempty"`
	SoldBy         int64           `json:"sold_by"`
	SoldByUsername string          `json:"sold_by_username,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Total          decimal.Decimal `json:"total"`
	Reference      string          `json:"reference"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
