package repository

import (
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	ProductID int64      // 0 = todos
	UserID    int64      // 0 = todos
	Start     *time.Time // created_at >= Start
	End       *time.Time // created_at < End (cota exclusiva)
	Limit     int
	Offset    int
}

// SaleListItem es una venta con los nombres resueltos para listados
// (evita un N+1 desde la capa de presentación).
type SaleListItem struct {
	Sale           entity.Sale
	ProductName    string
	ProductSKU     string
	SoldByUsername string
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id int64) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	List(filter SaleFilter) ([]SaleListItem, error)
	Delete(id int64) error
}
