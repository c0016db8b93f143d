package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/analytics"
)

// DashboardPages página principal tras el login.
type DashboardPages struct {
	store       *session.Store
	analyticsUC *analytics.DashboardUseCase
}

// NewDashboardPages construye la página de dashboard.
func NewDashboardPages(store *session.Store, analyticsUC *analytics.DashboardUseCase) *DashboardPages {
	return &DashboardPages{store: store, analyticsUC: analyticsUC}
}

// Dashboard GET /dashboard - totales, stock bajo y ventas recientes.
func (p *DashboardPages) Dashboard(c *fiber.Ctx) error {
	sess, err := p.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	actor := currentActor(sess)

	data, err := p.analyticsUC.GetDashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("dashboard", fiber.Map{
		"Title":     "Dashboard",
		"Username":  currentUsername(sess),
		"IsManager": actor.IsManager(),
		"Flash":     popFlash(sess),
		"Data":      data,
	})
}
