package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// UserPages gestión de usuarios (solo gerentes).
type UserPages struct {
	store  *session.Store
	userUC *usecase.UserUseCase
}

// NewUserPages construye las páginas de usuarios.
func NewUserPages(store *session.Store, userUC *usecase.UserUseCase) *UserPages {
	return &UserPages{store: store, userUC: userUC}
}

// List GET /users
func (p *UserPages) List(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	out, err := p.userUC.List(100, 0)
	if err != nil {
		return err
	}
	return c.Render("users/list", fiber.Map{
		"Title":     "Usuarios",
		"Username":  currentUsername(sess),
		"IsManager": true,
		"Flash":     popFlash(sess),
		"Users":     out.Items,
		"ActorID":   currentActor(sess).ID,
	})
}

// Form GET /users/new y GET /users/:id/edit
func (p *UserPages) Form(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	data := fiber.Map{
		"Title":     "Nuevo usuario",
		"Username":  currentUsername(sess),
		"IsManager": true,
		"Flash":     popFlash(sess),
	}
	if idStr := c.Params("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return c.Redirect("/users")
		}
		user, err := p.userUC.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			setFlash(sess, "Usuario no encontrado.")
			return c.Redirect("/users")
		}
		data["Title"] = "Editar usuario"
		data["User"] = user
	}
	return c.Render("users/form", data)
}

// Create POST /users
func (p *UserPages) Create(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	in := dto.CreateUserRequest{
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Password:  c.FormValue("password"),
		Role:      c.FormValue("role"),
	}
	if _, err := p.userUC.Create(in); err != nil {
		switch err {
		case domain.ErrPasswordRequired:
			setFlash(sess, "La contraseña es requerida.")
		case domain.ErrDuplicate:
			setFlash(sess, "El nombre de usuario ya existe.")
		case domain.ErrInvalidInput:
			setFlash(sess, "Revisa los datos del formulario.")
		default:
			setFlash(sess, "No se pudo crear el usuario.")
		}
		return c.Redirect("/users/new")
	}
	setFlash(sess, "Usuario creado.")
	return c.Redirect("/users")
}

// Update POST /users/:id
func (p *UserPages) Update(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/users")
	}
	out, err := p.userUC.Update(id, userUpdateForm(c))
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			setFlash(sess, "Revisa los datos del formulario.")
		default:
			setFlash(sess, "No se pudo actualizar el usuario.")
		}
		return c.Redirect("/users/" + c.Params("id") + "/edit")
	}
	if out == nil {
		setFlash(sess, "Usuario no encontrado.")
		return c.Redirect("/users")
	}
	setFlash(sess, "Usuario actualizado.")
	return c.Redirect("/users")
}

// userUpdateForm traduce el formulario de edición. Los campos de texto
// siempre viajan completos; la contraseña solo cuando se escribió una nueva
// (en blanco significa conservar la actual).
func userUpdateForm(c *fiber.Ctx) dto.UpdateUserRequest {
	email := c.FormValue("email")
	firstName := c.FormValue("first_name")
	lastName := c.FormValue("last_name")
	role := c.FormValue("role")
	isActive := c.FormValue("is_active") == "on"

	in := dto.UpdateUserRequest{
		Email:     &email,
		FirstName: &firstName,
		LastName:  &lastName,
		Role:      &role,
		IsActive:  &isActive,
	}
	if pw := c.FormValue("password"); pw != "" {
		in.Password = &pw
	}
	return in
}

// Deactivate POST /users/:id/deactivate
func (p *UserPages) Deactivate(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/users")
	}
	actor := currentActor(sess)
	if err := p.userUC.Deactivate(actor, id); err != nil {
		switch err {
		case domain.ErrSelfDeactivation:
			setFlash(sess, "No puedes desactivar tu propia cuenta.")
		case domain.ErrManagerDeactivation:
			setFlash(sess, "Solo un superusuario puede desactivar a un gerente.")
		case domain.ErrNotFound:
			setFlash(sess, "Usuario no encontrado.")
		default:
			setFlash(sess, "No se pudo desactivar el usuario.")
		}
	} else {
		setFlash(sess, "Usuario desactivado.")
	}
	return c.Redirect("/users")
}
