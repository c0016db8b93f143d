package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity solo se modifica a través del motor de ventas (descuento transaccional);
// Price es el precio de venta vigente, el histórico queda congelado en Sale.UnitPrice.
type Product struct {
	ID           int64
	Name         string
	SKU          string // código único
	CategoryID   int64
	SupplierID   *int64 // opcional
	Description  string
	Quantity     int
	ReorderLevel int
	Price        decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el stock está en o por debajo del nivel de reposición.
// El límite es inclusivo: quantity == reorder_level ya cuenta como stock bajo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}
