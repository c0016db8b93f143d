package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// TopProductResult producto con mayor cantidad vendida en el período.
type TopProductResult struct {
	ProductID   int64
	ProductName string
	TotalQty    int64
}

// UserSalesResult ventas agregadas por usuario en el período.
type UserSalesResult struct {
	UserID       int64
	Username     string
	TotalSales   int64
	TotalRevenue decimal.Decimal
}

// Totals conteos globales para el dashboard.
type Totals struct {
	Products  int64
	Suppliers int64
	Sales     int64
	LowStock  int64
}

// AnalyticsRepository consultas de solo lectura para dashboard y analítica.
type AnalyticsRepository interface {
	GetTotals(ctx context.Context) (Totals, error)
	// GetRevenue suma quantity × unit_price de las ventas del período.
	GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// ListLowStock devuelve productos con quantity <= reorder_level.
	ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error)
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
	GetSalesByUser(ctx context.Context, start, end time.Time) ([]UserSalesResult, error)
	ListRecentSales(ctx context.Context, since time.Time, limit int) ([]SaleListItem, error)
}
