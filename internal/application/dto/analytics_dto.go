package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más vendido del período.
type TopProductDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalQty    int64  `json:"total_qty"`
}

// UserSalesDTO ventas agregadas por usuario.
type UserSalesDTO struct {
	UserID       int64           `json:"user_id"`
	Username     string          `json:"username"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DashboardDTO resumen para el dashboard (cualquier usuario autenticado).
type DashboardDTO struct {
	TotalProducts     int64             `json:"total_products"`
	LowStockCount     int64             `json:"low_stock_count"`
	LowStockProducts  []ProductResponse `json:"low_stock_products"`
	RecentSales       []SaleResponse    `json:"recent_sales"`
	RevenueLast30Days decimal.Decimal   `json:"revenue_last_30_days"`
}

// AnalyticsSummaryDTO analítica completa (solo gerentes).
type AnalyticsSummaryDTO struct {
	TotalProducts     int64           `json:"total_products"`
	TotalSuppliers    int64           `json:"total_suppliers"`
	TotalSales        int64           `json:"total_sales"`
	LowStockCount     int64           `json:"low_stock_count"`
	RevenueLast30Days decimal.Decimal `json:"revenue_last_30_days"`
	TopProducts       []TopProductDTO `json:"top_products"`
	SalesByUser       []UserSalesDTO  `json:"sales_by_user"`
}
