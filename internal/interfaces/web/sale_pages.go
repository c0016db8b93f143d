package web

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// SalePages listado y registro de ventas.
type SalePages struct {
	store     *session.Store
	saleUC    *sales.SaleUseCase
	productUC *usecase.ProductUseCase
	userUC    *usecase.UserUseCase
}

// NewSalePages construye las páginas de ventas.
func NewSalePages(store *session.Store, saleUC *sales.SaleUseCase, productUC *usecase.ProductUseCase, userUC *usecase.UserUseCase) *SalePages {
	return &SalePages{store: store, saleUC: saleUC, productUC: productUC, userUC: userUC}
}

// saleListQuery construye el filtro del historial desde los query params y
// devuelve además la query string que conserva el filtro en la paginación.
// La fecha final cubre el día completo: se avanza a la medianoche del día
// siguiente porque la cota del repositorio es exclusiva.
func saleListQuery(c *fiber.Ctx, page int) (repository.SaleFilter, string) {
	filter := repository.SaleFilter{
		ProductID: int64(c.QueryInt("product_id", 0)),
		UserID:    int64(c.QueryInt("user_id", 0)),
		Limit:     webPageSize,
		Offset:    (page - 1) * webPageSize,
	}
	qs := url.Values{}
	if filter.ProductID > 0 {
		qs.Set("product_id", strconv.FormatInt(filter.ProductID, 10))
	}
	if filter.UserID > 0 {
		qs.Set("user_id", strconv.FormatInt(filter.UserID, 10))
	}
	if v := c.Query("start"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.Start = &t
			qs.Set("start", v)
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			t = t.AddDate(0, 0, 1)
			filter.End = &t
			qs.Set("end", v)
		}
	}
	extra := ""
	if len(qs) > 0 {
		extra = "&" + qs.Encode()
	}
	return filter, extra
}

// List GET /sales - historial de ventas, filtrable por producto, vendedor
// y rango de fechas.
func (p *SalePages) List(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	actor := currentActor(sess)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	filter, filterQS := saleListQuery(c, page)
	out, err := p.saleUC.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	products, err := p.productUC.List(repository.ProductFilter{Limit: 1000})
	if err != nil {
		return err
	}
	users, err := p.userUC.List(100, 0)
	if err != nil {
		return err
	}
	return c.Render("sales/list", fiber.Map{
		"Title":           "Ventas",
		"Username":        currentUsername(sess),
		"IsManager":       actor.IsManager(),
		"Flash":           popFlash(sess),
		"Sales":           out.Items,
		"Products":        products.Items,
		"Sellers":         users.Items,
		"FilterProductID": filter.ProductID,
		"FilterUserID":    filter.UserID,
		"FilterStart":     c.Query("start"),
		"FilterEnd":       c.Query("end"),
		"FilterQS":        filterQS,
		"Page":            page,
		"NextPage":        page + 1,
		"PrevPage":        page - 1,
		"HasMore":         len(out.Items) == webPageSize,
	})
}

// Form GET /sales/new - formulario de venta. Los empleados solo ven productos
// activos; un gerente puede vender también los desactivados (liquidación).
func (p *SalePages) Form(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	actor := currentActor(sess)

	products, err := p.productUC.List(repository.ProductFilter{
		OnlyActive: !actor.IsManager(),
		Limit:      1000,
	})
	if err != nil {
		return err
	}
	return c.Render("sales/form", fiber.Map{
		"Title":     "Registrar venta",
		"Username":  currentUsername(sess),
		"IsManager": actor.IsManager(),
		"Flash":     popFlash(sess),
		"Products":  products.Items,
	})
}

// Create POST /sales - registra la venta con el motor transaccional.
func (p *SalePages) Create(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	actor := currentActor(sess)

	productID, _ := strconv.ParseInt(c.FormValue("product_id"), 10, 64)
	quantity, _ := strconv.Atoi(c.FormValue("quantity"))
	in := dto.CreateSaleRequest{
		ProductID: productID,
		Quantity:  quantity,
		Notes:     c.FormValue("notes"),
	}
	if _, err := p.saleUC.Record(c.UserContext(), actor.ID, in); err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			setFlash(sess, "La cantidad debe ser mayor que cero.")
		case domain.ErrInsufficientStock:
			setFlash(sess, "Stock insuficiente para la cantidad solicitada.")
		case domain.ErrNotFound:
			setFlash(sess, "El producto seleccionado no existe.")
		default:
			setFlash(sess, "No se pudo registrar la venta.")
		}
		return c.Redirect("/sales/new")
	}
	setFlash(sess, "Venta registrada.")
	return c.Redirect("/sales")
}

// Delete POST /sales/:id/delete - elimina la venta y restaura el stock (gerentes).
func (p *SalePages) Delete(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/sales")
	}
	if err := p.saleUC.Delete(c.UserContext(), id); err != nil {
		if err == domain.ErrNotFound {
			setFlash(sess, "Venta no encontrada.")
		} else {
			setFlash(sess, "No se pudo eliminar la venta.")
		}
	} else {
		setFlash(sess, "Venta eliminada. El stock fue restaurado.")
	}
	return c.Redirect("/sales")
}
