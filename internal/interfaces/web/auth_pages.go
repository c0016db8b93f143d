package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/domain/authz"
)

// AuthPages login y logout por sesión.
type AuthPages struct {
	store  *session.Store
	authUC *auth.AuthUseCase
}

// NewAuthPages construye las páginas de auth.
func NewAuthPages(store *session.Store, authUC *auth.AuthUseCase) *AuthPages {
	return &AuthPages{store: store, authUC: authUC}
}

// LoginForm GET /login - formulario de acceso.
func (p *AuthPages) LoginForm(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err == nil && currentActor(sess).ID != 0 {
		return c.Redirect("/dashboard")
	}
	return c.Render("login", fiber.Map{"Title": "Iniciar sesión"}, "layouts/bare")
}

// Login POST /login - valida credenciales y abre sesión.
func (p *AuthPages) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render("login", fiber.Map{
			"Title": "Iniciar sesión",
			"Error": "Usuario y contraseña son requeridos.",
		}, "layouts/bare")
	}
	user, err := p.authUC.Authenticate(username, password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": "Iniciar sesión",
			"Error": "Credenciales inválidas o cuenta desactivada.",
		}, "layouts/bare")
	}
	sess, err := p.store.Get(c)
	if err != nil {
		return err
	}
	if err := login(sess, authz.ActorFromUser(user), user.Username); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// Logout POST /logout - destruye la sesión.
func (p *AuthPages) Logout(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/login")
}
