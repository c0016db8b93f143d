package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// CategoryPages listado y formularios de categorías.
type CategoryPages struct {
	store      *session.Store
	categoryUC *usecase.CategoryUseCase
}

// NewCategoryPages construye las páginas de categorías.
func NewCategoryPages(store *session.Store, categoryUC *usecase.CategoryUseCase) *CategoryPages {
	return &CategoryPages{store: store, categoryUC: categoryUC}
}

// List GET /categories
func (p *CategoryPages) List(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	categories, err := p.categoryUC.List()
	if err != nil {
		return err
	}
	return c.Render("categories/list", fiber.Map{
		"Title":      "Categorías",
		"Username":   currentUsername(sess),
		"IsManager":  currentActor(sess).IsManager(),
		"Flash":      popFlash(sess),
		"Categories": categories,
	})
}

// Form GET /categories/new y GET /categories/:id/edit
func (p *CategoryPages) Form(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	var category *dto.CategoryResponse
	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return c.Redirect("/categories")
		}
		category, err = p.categoryUC.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			setFlash(sess, "Categoría no encontrada.")
			return c.Redirect("/categories")
		}
	}
	title := "Nueva categoría"
	if category != nil {
		title = "Editar categoría"
	}
	return c.Render("categories/form", fiber.Map{
		"Title":     title,
		"Username":  currentUsername(sess),
		"IsManager": currentActor(sess).IsManager(),
		"Category":  category,
	})
}

// Save POST /categories y POST /categories/:id
func (p *CategoryPages) Save(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	name := c.FormValue("name")
	description := c.FormValue("description")

	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return c.Redirect("/categories")
		}
		in := dto.UpdateCategoryRequest{Name: &name, Description: &description}
		if _, err := p.categoryUC.Update(id, in); err != nil {
			setFlash(sess, saveCategoryError(err))
			return c.Redirect("/categories/" + idParam + "/edit")
		}
		setFlash(sess, "Categoría actualizada.")
		return c.Redirect("/categories")
	}

	in := dto.CreateCategoryRequest{Name: name, Description: description}
	if _, err := p.categoryUC.Create(in); err != nil {
		setFlash(sess, saveCategoryError(err))
		return c.Redirect("/categories/new")
	}
	setFlash(sess, "Categoría creada.")
	return c.Redirect("/categories")
}

// Delete POST /categories/:id/delete
func (p *CategoryPages) Delete(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/categories")
	}
	if err := p.categoryUC.Delete(id); err != nil {
		switch err {
		case domain.ErrCategoryInUse:
			setFlash(sess, "La categoría tiene productos asociados y no puede eliminarse.")
		case domain.ErrNotFound:
			setFlash(sess, "Categoría no encontrada.")
		default:
			setFlash(sess, "No se pudo eliminar la categoría.")
		}
	} else {
		setFlash(sess, "Categoría eliminada.")
	}
	return c.Redirect("/categories")
}

func saveCategoryError(err error) string {
	switch err {
	case domain.ErrDuplicate:
		return "Ya existe una categoría con ese nombre."
	case domain.ErrInvalidInput:
		return "El nombre es requerido."
	}
	return "No se pudo guardar la categoría."
}
