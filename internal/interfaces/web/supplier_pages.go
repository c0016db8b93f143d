package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// SupplierPages listado y formularios de proveedores.
type SupplierPages struct {
	store      *session.Store
	supplierUC *usecase.SupplierUseCase
}

// NewSupplierPages construye las páginas de proveedores.
func NewSupplierPages(store *session.Store, supplierUC *usecase.SupplierUseCase) *SupplierPages {
	return &SupplierPages{store: store, supplierUC: supplierUC}
}

// List GET /suppliers
func (p *SupplierPages) List(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	suppliers, err := p.supplierUC.List()
	if err != nil {
		return err
	}
	return c.Render("suppliers/list", fiber.Map{
		"Title":     "Proveedores",
		"Username":  currentUsername(sess),
		"IsManager": currentActor(sess).IsManager(),
		"Flash":     popFlash(sess),
		"Suppliers": suppliers,
	})
}

// Form GET /suppliers/new y GET /suppliers/:id/edit
func (p *SupplierPages) Form(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	var supplier *dto.SupplierResponse
	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return c.Redirect("/suppliers")
		}
		supplier, err = p.supplierUC.GetByID(id)
		if err != nil {
			return err
		}
		if supplier == nil {
			setFlash(sess, "Proveedor no encontrado.")
			return c.Redirect("/suppliers")
		}
	}
	title := "Nuevo proveedor"
	if supplier != nil {
		title = "Editar proveedor"
	}
	return c.Render("suppliers/form", fiber.Map{
		"Title":     title,
		"Username":  currentUsername(sess),
		"IsManager": currentActor(sess).IsManager(),
		"Supplier":  supplier,
	})
}

// Save POST /suppliers y POST /suppliers/:id
func (p *SupplierPages) Save(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	name := c.FormValue("name")
	contactName := c.FormValue("contact_name")
	contactEmail := c.FormValue("contact_email")
	contactPhone := c.FormValue("contact_phone")
	address := c.FormValue("address")
	isActive := c.FormValue("is_active") == "on"

	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return c.Redirect("/suppliers")
		}
		in := dto.UpdateSupplierRequest{
			Name:         &name,
			ContactName:  &contactName,
			ContactEmail: &contactEmail,
			ContactPhone: &contactPhone,
			Address:      &address,
			IsActive:     &isActive,
		}
		if _, err := p.supplierUC.Update(id, in); err != nil {
			setFlash(sess, "No se pudo guardar el proveedor.")
			return c.Redirect("/suppliers/" + idParam + "/edit")
		}
		setFlash(sess, "Proveedor actualizado.")
		return c.Redirect("/suppliers")
	}

	in := dto.CreateSupplierRequest{
		Name:         name,
		ContactName:  contactName,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		Address:      address,
		IsActive:     &isActive,
	}
	if _, err := p.supplierUC.Create(in); err != nil {
		if err == domain.ErrInvalidInput {
			setFlash(sess, "El nombre es requerido.")
		} else {
			setFlash(sess, "No se pudo guardar el proveedor.")
		}
		return c.Redirect("/suppliers/new")
	}
	setFlash(sess, "Proveedor creado.")
	return c.Redirect("/suppliers")
}

// Delete POST /suppliers/:id/delete
func (p *SupplierPages) Delete(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/suppliers")
	}
	if err := p.supplierUC.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			setFlash(sess, "Proveedor no encontrado.")
		} else {
			setFlash(sess, "No se pudo eliminar el proveedor.")
		}
	} else {
		setFlash(sess, "Proveedor eliminado. Sus productos quedan sin proveedor asignado.")
	}
	return c.Redirect("/suppliers")
}
