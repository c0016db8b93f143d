package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=150"`
	SKU          string          `json:"sku" validate:"required,min=1,max=64"`
	CategoryID   int64           `json:"category_id" validate:"required"`
	SupplierID   *int64          `json:"supplier_id"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	ReorderLevel *int            `json:"reorder_level" validate:"omitempty,min=0"`
	Price        decimal.Decimal `json:"price"`
	IsActive     *bool           `json:"is_active"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no se
// tocan; supplier_id = 0 desvincula el proveedor.
// Quantity no aparece: el stock solo se modifica a través del motor de ventas.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=150"`
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=64"`
	CategoryID   *int64           `json:"category_id"`
	SupplierID   *int64           `json:"supplier_id"`
	Description  *string          `json:"description"`
	ReorderLevel *int             `json:"reorder_level" validate:"omitempty,min=0"`
	Price        *decimal.Decimal `json:"price"`
	IsActive     *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CategoryID   int64           `json:"category_id"`
	SupplierID   *int64          `json:"supplier_id"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"is_active"`
	IsLowStock   bool            `json:"is_low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
