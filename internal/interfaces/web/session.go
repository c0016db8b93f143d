// Package web implementa la interfaz HTML de la tienda: login por sesión,
// dashboard y formularios CRUD renderizados en el servidor.
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/domain/authz"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// Keys de la sesión web.
const (
	sessUserID      = "user_id"
	sessUsername    = "username"
	sessRole        = "role"
	sessIsSuperuser = "is_superuser"
	sessFlash       = "flash"
)

// NewSessionStore construye el almacén de sesiones por cookie.
func NewSessionStore(cfg config.SessionConfig) *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.CookieName,
		Expiration:     time.Duration(cfg.Expiration) * time.Minute,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// login guarda la identidad del usuario en la sesión.
func login(sess *session.Session, actor authz.Actor, username string) error {
	sess.Set(sessUserID, actor.ID)
	sess.Set(sessUsername, username)
	sess.Set(sessRole, actor.Role)
	sess.Set(sessIsSuperuser, actor.IsSuperuser)
	return sess.Save()
}

// currentActor reconstruye el actor desde la sesión. ID cero = sin sesión.
func currentActor(sess *session.Session) authz.Actor {
	var actor authz.Actor
	if v, ok := sess.Get(sessUserID).(int64); ok {
		actor.ID = v
	}
	if v, ok := sess.Get(sessRole).(string); ok {
		actor.Role = v
	}
	if v, ok := sess.Get(sessIsSuperuser).(bool); ok {
		actor.IsSuperuser = v
	}
	return actor
}

// currentUsername devuelve el username de la sesión (para el layout).
func currentUsername(sess *session.Session) string {
	v, _ := sess.Get(sessUsername).(string)
	return v
}

// setFlash deja un mensaje de una sola lectura para la próxima página.
func setFlash(sess *session.Session, msg string) {
	sess.Set(sessFlash, msg)
	_ = sess.Save()
}

// popFlash devuelve y borra el mensaje flash pendiente.
func popFlash(sess *session.Session) string {
	v, _ := sess.Get(sessFlash).(string)
	if v != "" {
		sess.Delete(sessFlash)
		_ = sess.Save()
	}
	return v
}

// RequireLogin redirige a /login si no hay sesión activa.
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login")
		}
		actor := currentActor(sess)
		if actor.ID == 0 {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RequireWebManager corta con 403 las páginas de gerencia.
func RequireWebManager(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login")
		}
		actor := currentActor(sess)
		if actor.ID == 0 {
			return c.Redirect("/login")
		}
		if err := authz.CanManage(actor); err != nil {
			return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{
				"Title":   "Acceso denegado",
				"Message": "Se requiere rol de gerente para esta página.",
			})
		}
		return c.Next()
	}
}
