package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// SetActive cambia únicamente el flag is_active (desactivación de cuentas).
	SetActive(id int64, active bool) error
	List(limit, offset int) ([]*entity.User, error)
}
