package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List() ([]*entity.Supplier, error)
	// Delete elimina el proveedor; los productos asociados quedan con
	// supplier_id NULL (ON DELETE SET NULL en el esquema).
	Delete(id int64) error
}
