package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const webPageSize = 25

// ProductPages listado y formularios de productos.
type ProductPages struct {
	store      *session.Store
	productUC  *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
	supplierUC *usecase.SupplierUseCase
}

// NewProductPages construye las páginas de productos.
func NewProductPages(store *session.Store, productUC *usecase.ProductUseCase, categoryUC *usecase.CategoryUseCase, supplierUC *usecase.SupplierUseCase) *ProductPages {
	return &ProductPages{store: store, productUC: productUC, categoryUC: categoryUC, supplierUC: supplierUC}
}

// List GET /products - listado con búsqueda y filtro por categoría.
func (p *ProductPages) List(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	actor := currentActor(sess)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	filter := repository.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: int64(c.QueryInt("category_id", 0)),
		Limit:      webPageSize,
		Offset:     (page - 1) * webPageSize,
	}
	products, err := p.productUC.List(filter)
	if err != nil {
		return err
	}
	categories, err := p.categoryUC.List()
	if err != nil {
		return err
	}
	return c.Render("products/list", fiber.Map{
		"Title":      "Productos",
		"Username":   currentUsername(sess),
		"IsManager":  actor.IsManager(),
		"Flash":      popFlash(sess),
		"Products":   products.Items,
		"Categories": categories,
		"Search":     filter.Search,
		"CategoryID": filter.CategoryID,
		"Page":       page,
		"NextPage":   page + 1,
		"PrevPage":   page - 1,
		"HasMore":    len(products.Items) == webPageSize,
	})
}

// Form GET /products/new y GET /products/:id/edit - formulario de alta/edición.
func (p *ProductPages) Form(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	var product *dto.ProductResponse
	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return c.Redirect("/products")
		}
		product, err = p.productUC.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			setFlash(sess, "Producto no encontrado.")
			return c.Redirect("/products")
		}
	}
	categories, err := p.categoryUC.List()
	if err != nil {
		return err
	}
	suppliers, err := p.supplierUC.List()
	if err != nil {
		return err
	}
	title := "Nuevo producto"
	if product != nil {
		title = "Editar producto"
	}
	return c.Render("products/form", fiber.Map{
		"Title":      title,
		"Username":   currentUsername(sess),
		"IsManager":  currentActor(sess).IsManager(),
		"Product":    product,
		"Categories": categories,
		"Suppliers":  suppliers,
	})
}

// Save POST /products y POST /products/:id - persiste el formulario.
func (p *ProductPages) Save(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}

	name := c.FormValue("name")
	sku := c.FormValue("sku")
	categoryID, _ := strconv.ParseInt(c.FormValue("category_id"), 10, 64)
	description := c.FormValue("description")
	price, priceErr := decimal.NewFromString(c.FormValue("price"))
	if priceErr != nil {
		price = decimal.Zero
	}
	supplierID, _ := strconv.ParseInt(c.FormValue("supplier_id"), 10, 64)
	if supplierID < 0 {
		supplierID = 0
	}
	var reorderLevel *int
	if v, err := strconv.Atoi(c.FormValue("reorder_level")); err == nil {
		reorderLevel = &v
	}
	isActive := c.FormValue("is_active") == "on"

	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return c.Redirect("/products")
		}
		// El select siempre viaja: 0 ("Sin proveedor") desvincula al proveedor.
		in := dto.UpdateProductRequest{
			Name:         &name,
			SKU:          &sku,
			CategoryID:   &categoryID,
			SupplierID:   &supplierID,
			Description:  &description,
			ReorderLevel: reorderLevel,
			Price:        &price,
			IsActive:     &isActive,
		}
		if _, err := p.productUC.Update(id, in); err != nil {
			setFlash(sess, saveProductError(err))
			return c.Redirect("/products/" + idParam + "/edit")
		}
		setFlash(sess, "Producto actualizado.")
		return c.Redirect("/products")
	}

	quantity, _ := strconv.Atoi(c.FormValue("quantity"))
	var createSupplier *int64
	if supplierID > 0 {
		createSupplier = &supplierID
	}
	in := dto.CreateProductRequest{
		Name:         name,
		SKU:          sku,
		CategoryID:   categoryID,
		SupplierID:   createSupplier,
		Description:  description,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
		Price:        price,
		IsActive:     &isActive,
	}
	if _, err := p.productUC.Create(in); err != nil {
		setFlash(sess, saveProductError(err))
		return c.Redirect("/products/new")
	}
	setFlash(sess, "Producto creado.")
	return c.Redirect("/products")
}

// Delete POST /products/:id/delete - elimina el producto.
func (p *ProductPages) Delete(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/products")
	}
	if err := p.productUC.Delete(id); err != nil {
		switch err {
		case domain.ErrConflict:
			setFlash(sess, "El producto tiene ventas registradas y no puede eliminarse.")
		case domain.ErrNotFound:
			setFlash(sess, "Producto no encontrado.")
		default:
			setFlash(sess, "No se pudo eliminar el producto.")
		}
	} else {
		setFlash(sess, "Producto eliminado.")
	}
	return c.Redirect("/products")
}

func saveProductError(err error) string {
	switch err {
	case domain.ErrDuplicate:
		return "Ya existe un producto con ese SKU."
	case domain.ErrInvalidInput:
		return "Revisa los datos del formulario."
	case domain.ErrNotFound:
		return "La categoría o el proveedor seleccionado no existe."
	}
	return "No se pudo guardar el producto."
}
