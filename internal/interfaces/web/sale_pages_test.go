package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// runSaleListQuery pasa la URL por una app real para obtener un *fiber.Ctx
// con los query params ya parseados.
func runSaleListQuery(t *testing.T, target string) (repository.SaleFilter, string) {
	t.Helper()
	var (
		filter repository.SaleFilter
		qs     string
	)
	app := fiber.New()
	app.Get("/sales", func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		filter, qs = saleListQuery(c, page)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return filter, qs
}

func TestSaleListQuery_SinFiltros(t *testing.T) {
	filter, qs := runSaleListQuery(t, "/sales")

	assert.Zero(t, filter.ProductID)
	assert.Zero(t, filter.UserID)
	assert.Nil(t, filter.Start)
	assert.Nil(t, filter.End)
	assert.Equal(t, webPageSize, filter.Limit)
	assert.Zero(t, filter.Offset)
	assert.Empty(t, qs, "sin filtros la paginación no arrastra query extra")
}

func TestSaleListQuery_FiltrosYPaginacion(t *testing.T) {
	filter, qs := runSaleListQuery(t, "/sales?product_id=3&user_id=2&start=2026-08-01&end=2026-09-01&page=2")

	assert.Equal(t, int64(3), filter.ProductID)
	assert.Equal(t, int64(2), filter.UserID)
	require.NotNil(t, filter.Start)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *filter.Start)
	assert.Equal(t, webPageSize, filter.Offset, "página 2 salta la primera página")

	// La query de paginación conserva el filtro tal como lo escribió el usuario.
	assert.Contains(t, qs, "product_id=3")
	assert.Contains(t, qs, "user_id=2")
	assert.Contains(t, qs, "start=2026-08-01")
	assert.Contains(t, qs, "end=2026-09-01")
}

// La fecha "Hasta" del formulario cubre el día completo: el filtro del
// repositorio es una cota exclusiva, así que se avanza a la medianoche
// del día siguiente.
func TestSaleListQuery_FechaFinalCubreElDiaCompleto(t *testing.T) {
	filter, _ := runSaleListQuery(t, "/sales?end=2026-09-01")

	require.NotNil(t, filter.End)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), *filter.End)

	venta := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	assert.True(t, venta.Before(*filter.End), "una venta del propio día final debe entrar en el rango")
}

func TestSaleListQuery_FechaInvalidaSeIgnora(t *testing.T) {
	filter, qs := runSaleListQuery(t, "/sales?start=ayer&end=01/09/2026")

	assert.Nil(t, filter.Start)
	assert.Nil(t, filter.End)
	assert.Empty(t, qs)
}
