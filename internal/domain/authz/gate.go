// Package authz implementa la puerta de permisos de la aplicación.
//
// El modelo es deliberadamente plano: un enum cerrado de roles
// (manager/employee) más la escalada booleana de superusuario. No hay
// herencia de permisos ni policies externas; toda decisión se reduce a
// predicados puros sobre el actor y, cuando aplica, el usuario objetivo.
package authz

import (
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Actor es la identidad de la petición en curso, extraída del token JWT o de
// la sesión web. Se pasa explícitamente como parámetro: no hay estado global.
type Actor struct {
	ID          int64
	Role        string
	IsSuperuser bool
}

// IsManager indica si el actor tiene permisos de gerente
// (superusuario o rol manager).
func (a Actor) IsManager() bool {
	return a.IsSuperuser || a.Role == entity.RoleManager
}

// ActorFromUser construye el actor a partir de un usuario persistido.
func ActorFromUser(u *entity.User) Actor {
	return Actor{ID: u.ID, Role: u.Role, IsSuperuser: u.IsSuperuser}
}

// CanManage autoriza las acciones protegidas (gestión de usuarios, mutación
// de catálogo, analítica). Devuelve ErrForbidden si el actor no es gerente.
func CanManage(actor Actor) error {
	if !actor.IsManager() {
		return domain.ErrForbidden
	}
	return nil
}

// CanDeactivate decide si el actor puede desactivar al usuario objetivo.
//
// Reglas:
//   - nadie puede desactivarse a sí mismo;
//   - un gerente solo puede ser desactivado por un superusuario;
//   - para el resto de usuarios basta con ser gerente.
func CanDeactivate(actor Actor, target *entity.User) error {
	if err := CanManage(actor); err != nil {
		return err
	}
	if actor.ID == target.ID {
		return domain.ErrSelfDeactivation
	}
	if target.IsManager() && !actor.IsSuperuser {
		return domain.ErrManagerDeactivation
	}
	return nil
}
