package entity

import "time"

// Category agrupa productos. El nombre es único.
// No puede eliminarse mientras algún producto la referencie.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
