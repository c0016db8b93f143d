package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // substring del nombre, case-insensitive
	CategoryID int64  // 0 = todas
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción: es la serialización por
	// producto que exige el motor de ventas.
	GetByIDForUpdate(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity actualiza solo el stock (usado por el motor de ventas).
	UpdateQuantity(id int64, quantity int) error
	List(filter ProductFilter) ([]*entity.Product, error)
	CountByCategory(categoryID int64) (int, error)
	Delete(id int64) error
}
