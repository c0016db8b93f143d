package entity

import "time"

// Supplier representa un proveedor. El nombre es único.
// Al eliminarlo, los productos que lo referencian quedan con supplier_id NULL.
type Supplier struct {
	ID           int64
	Name         string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Address      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
