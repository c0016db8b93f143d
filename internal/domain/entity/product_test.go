package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// El límite de stock bajo es inclusivo: quantity == reorder_level ya alerta.
func TestIsLowStock_LimiteInclusivo(t *testing.T) {
	cases := []struct {
		name         string
		quantity     int
		reorderLevel int
		want         bool
	}{
		{"por encima del nivel", 6, 5, false},
		{"exactamente en el nivel", 5, 5, true},
		{"por debajo del nivel", 4, 5, true},
		{"sin stock", 0, 5, true},
		{"nivel cero y stock cero", 0, 0, true},
		{"nivel cero con stock", 1, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &entity.Product{Quantity: tc.quantity, ReorderLevel: tc.reorderLevel}
			assert.Equal(t, tc.want, p.IsLowStock())
		})
	}
}

func TestSaleTotal_CantidadPorPrecioUnitario(t *testing.T) {
	s := &entity.Sale{Quantity: 3, UnitPrice: decimal.RequireFromString("2500.50")}
	assert.True(t, s.Total().Equal(decimal.RequireFromString("7501.50")))
}

func TestUserNormalizeRole_SuperusuarioQuedaGerente(t *testing.T) {
	u := &entity.User{Role: entity.RoleEmployee, IsSuperuser: true}
	u.NormalizeRole()
	assert.Equal(t, entity.RoleManager, u.Role)

	// Un empleado normal no cambia.
	e := &entity.User{Role: entity.RoleEmployee}
	e.NormalizeRole()
	assert.Equal(t, entity.RoleEmployee, e.Role)
}

func TestUserFullName(t *testing.T) {
	cases := []struct {
		name string
		user entity.User
		want string
	}{
		{"nombre y apellido", entity.User{Username: "ana", FirstName: "Ana", LastName: "Pérez"}, "Ana Pérez"},
		{"solo nombre", entity.User{Username: "ana", FirstName: "Ana"}, "Ana"},
		{"sin nombres cae al username", entity.User{Username: "ana"}, "ana"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.FullName())
		})
	}
}
