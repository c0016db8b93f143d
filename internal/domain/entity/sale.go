package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registra una venta de un producto.
// UnitPrice es un snapshot del precio del producto en el momento de la transacción:
// nunca se recalcula aunque el precio del producto cambie después.
type Sale struct {
	ID        int64
	ProductID int64
	SoldBy    int64
	Quantity  int
	UnitPrice decimal.Decimal
	Reference string // código de correlación (uuid) asignado al crear
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total devuelve cantidad × precio unitario.
func (s *Sale) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
