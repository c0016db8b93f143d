package entity

import "time"

// Roles válidos para User.
const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// User representa un usuario del sistema.
// Un superusuario siempre se persiste con rol manager (NormalizeRole).
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // manager, employee
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager indica si el usuario tiene permisos de gerente.
func (u *User) IsManager() bool {
	return u.IsSuperuser || u.Role == RoleManager
}

// NormalizeRole fuerza el invariante superusuario => rol manager.
// Debe llamarse antes de cada persistencia del usuario.
func (u *User) NormalizeRole() {
	if u.IsSuperuser {
		u.Role = RoleManager
	}
}

// FullName devuelve nombre y apellido, o el username si están vacíos.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
