package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/reports"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	SaleUC      *sales.SaleUseCase
	AnalyticsUC *analytics.DashboardUseCase
	ReportUC    *reports.SalesReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Modelo de permisos: toda ruta bajo /api (salvo login) requiere Bearer Token.
// Las lecturas de catálogo y el registro de ventas están abiertos a cualquier
// usuario autenticado; la mutación de catálogo, la gestión de usuarios, la
// analítica y los reportes requieren rol de gerente.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manager := RequireManager()

	protected.Get("/auth/me", authHandler.Me)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Put("/:id", manager, categoryHandler.Update)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", manager, supplierHandler.Create)
	suppliers.Put("/:id", manager, supplierHandler.Update)
	suppliers.Delete("/:id", manager, supplierHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)

	// Sales: cualquier empleado registra y consulta; corregir o eliminar es de gerentes
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Put("/:id", manager, saleHandler.Update)
	salesGroup.Delete("/:id", manager, saleHandler.Delete)

	// Users (solo gerentes)
	users := protected.Group("/users", manager)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/deactivate", userHandler.Deactivate)

	// Analytics: el dashboard es para todos; el resumen completo, de gerentes
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/analytics/dashboard", analyticsHandler.Dashboard)
	protected.Get("/analytics/summary", manager, analyticsHandler.Summary)

	// Reports (solo gerentes)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/sales.pdf", manager, reportHandler.SalesPDF)
}
