package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para las páginas web.
type RouterDeps struct {
	Store       *session.Store
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	SaleUC      *sales.SaleUseCase
	AnalyticsUC *analytics.DashboardUseCase
}

// Router registra las rutas de la interfaz HTML.
//
// Mismo modelo de permisos que la API: las mutaciones de catálogo y la
// gestión de usuarios son de gerentes; listados y registro de ventas,
// de cualquier usuario con sesión.
func Router(app *fiber.App, deps RouterDeps) {
	authPages := NewAuthPages(deps.Store, deps.AuthUC)
	app.Get("/login", authPages.LoginForm)
	app.Post("/login", authPages.Login)
	app.Post("/logout", authPages.Logout)

	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard") })

	loggedIn := RequireLogin(deps.Store)
	manager := RequireWebManager(deps.Store)

	dashboardPages := NewDashboardPages(deps.Store, deps.AnalyticsUC)
	app.Get("/dashboard", loggedIn, dashboardPages.Dashboard)

	productPages := NewProductPages(deps.Store, deps.ProductUC, deps.CategoryUC, deps.SupplierUC)
	app.Get("/products", loggedIn, productPages.List)
	app.Get("/products/new", manager, productPages.Form)
	app.Post("/products", manager, productPages.Save)
	app.Get("/products/:id/edit", manager, productPages.Form)
	app.Post("/products/:id", manager, productPages.Save)
	app.Post("/products/:id/delete", manager, productPages.Delete)

	categoryPages := NewCategoryPages(deps.Store, deps.CategoryUC)
	app.Get("/categories", loggedIn, categoryPages.List)
	app.Get("/categories/new", manager, categoryPages.Form)
	app.Post("/categories", manager, categoryPages.Save)
	app.Get("/categories/:id/edit", manager, categoryPages.Form)
	app.Post("/categories/:id", manager, categoryPages.Save)
	app.Post("/categories/:id/delete", manager, categoryPages.Delete)

	supplierPages := NewSupplierPages(deps.Store, deps.SupplierUC)
	app.Get("/suppliers", loggedIn, supplierPages.List)
	app.Get("/suppliers/new", manager, supplierPages.Form)
	app.Post("/suppliers", manager, supplierPages.Save)
	app.Get("/suppliers/:id/edit", manager, supplierPages.Form)
	app.Post("/suppliers/:id", manager, supplierPages.Save)
	app.Post("/suppliers/:id/delete", manager, supplierPages.Delete)

	salePages := NewSalePages(deps.Store, deps.SaleUC, deps.ProductUC, deps.UserUC)
	app.Get("/sales", loggedIn, salePages.List)
	app.Get("/sales/new", loggedIn, salePages.Form)
	app.Post("/sales", loggedIn, salePages.Create)
	app.Post("/sales/:id/delete", manager, salePages.Delete)

	userPages := NewUserPages(deps.Store, deps.UserUC)
	app.Get("/users", manager, userPages.List)
	app.Get("/users/new", manager, userPages.Form)
	app.Post("/users", manager, userPages.Create)
	app.Get("/users/:id/edit", manager, userPages.Form)
	app.Post("/users/:id", manager, userPages.Update)
	app.Post("/users/:id/deactivate", manager, userPages.Deactivate)
}
