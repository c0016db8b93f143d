package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/authz"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func manager(id int64) authz.Actor {
	return authz.Actor{ID: id, Role: entity.RoleManager}
}

func employee(id int64) authz.Actor {
	return authz.Actor{ID: id, Role: entity.RoleEmployee}
}

func superuser(id int64) authz.Actor {
	return authz.Actor{ID: id, Role: entity.RoleManager, IsSuperuser: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// CanManage
// ──────────────────────────────────────────────────────────────────────────────

func TestCanManage_GerentePuede(t *testing.T) {
	assert.NoError(t, authz.CanManage(manager(1)))
}

func TestCanManage_EmpleadoNoPuede(t *testing.T) {
	assert.ErrorIs(t, authz.CanManage(employee(1)), domain.ErrForbidden)
}

func TestCanManage_SuperusuarioConRolEmpleadoPuede(t *testing.T) {
	// El superusuario escala aunque el rol persistido sea employee
	// (estado que NormalizeRole corrige, pero la puerta no depende de eso).
	actor := authz.Actor{ID: 1, Role: entity.RoleEmployee, IsSuperuser: true}
	assert.NoError(t, authz.CanManage(actor))
}

func TestCanManage_RolDesconocidoNoPuede(t *testing.T) {
	actor := authz.Actor{ID: 1, Role: "auditor"}
	assert.ErrorIs(t, authz.CanManage(actor), domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// CanDeactivate
// ──────────────────────────────────────────────────────────────────────────────

func TestCanDeactivate_GerenteDesactivaEmpleado(t *testing.T) {
	target := &entity.User{ID: 2, Role: entity.RoleEmployee}
	assert.NoError(t, authz.CanDeactivate(manager(1), target))
}

func TestCanDeactivate_EmpleadoNoDesactivaNada(t *testing.T) {
	target := &entity.User{ID: 2, Role: entity.RoleEmployee}
	assert.ErrorIs(t, authz.CanDeactivate(employee(1), target), domain.ErrForbidden)
}

func TestCanDeactivate_NadieSeDesactivaASiMismo(t *testing.T) {
	self := &entity.User{ID: 1, Role: entity.RoleManager}
	assert.ErrorIs(t, authz.CanDeactivate(manager(1), self), domain.ErrSelfDeactivation)

	// Ni siquiera el superusuario.
	selfSuper := &entity.User{ID: 3, Role: entity.RoleManager, IsSuperuser: true}
	assert.ErrorIs(t, authz.CanDeactivate(superuser(3), selfSuper), domain.ErrSelfDeactivation)
}

func TestCanDeactivate_GerenteNoDesactivaGerente(t *testing.T) {
	target := &entity.User{ID: 2, Role: entity.RoleManager}
	assert.ErrorIs(t, authz.CanDeactivate(manager(1), target), domain.ErrManagerDeactivation)
}

func TestCanDeactivate_SuperusuarioDesactivaGerente(t *testing.T) {
	target := &entity.User{ID: 2, Role: entity.RoleManager}
	assert.NoError(t, authz.CanDeactivate(superuser(1), target))
}

func TestCanDeactivate_SuperusuarioObjetivoCuentaComoGerente(t *testing.T) {
	// Un superusuario con rol employee sigue siendo gerente a efectos de la regla.
	target := &entity.User{ID: 2, Role: entity.RoleEmployee, IsSuperuser: true}
	assert.ErrorIs(t, authz.CanDeactivate(manager(1), target), domain.ErrManagerDeactivation)
	assert.NoError(t, authz.CanDeactivate(superuser(1), target))
}
