// Package analytics contiene los casos de uso de reportes de negocio:
// el dashboard operativo y la analítica de gerencia.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const (
	dashboardLowStockLimit = 5  // productos en el widget de stock bajo
	dashboardRecentSales   = 5  // ventas recientes en el dashboard
	analyticsTopProducts   = 5  // productos top en la analítica
	revenueWindowDays      = 30 // ventana de ingresos
)

// DashboardUseCase genera el resumen del dashboard y la analítica de gerencia.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No toca las tablas directamente; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetDashboard construye el resumen para cualquier usuario autenticado:
// totales, stock bajo, ventas recientes e ingresos de los últimos 30 días.
//
// Las cuatro consultas se lanzan en paralelo (goroutines + canales).
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -revenueWindowDays)

	type totalsResult struct {
		totals repository.Totals
		err    error
	}
	type revenueResult struct {
		revenue decimal.Decimal
		err     error
	}
	type lowStockResult struct {
		products []dto.ProductResponse
		err      error
	}
	type recentResult struct {
		sales []dto.SaleResponse
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	revenueCh := make(chan revenueResult, 1)
	lowStockCh := make(chan lowStockResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		totals, err := uc.analyticsRepo.GetTotals(ctx)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		revenue, err := uc.analyticsRepo.GetRevenue(ctx, since, now)
		revenueCh <- revenueResult{revenue, err}
	}()
	go func() {
		products, err := uc.analyticsRepo.ListLowStock(ctx, dashboardLowStockLimit)
		if err != nil {
			lowStockCh <- lowStockResult{nil, err}
			return
		}
		out := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			out = append(out, *usecase.ToProductResponse(p))
		}
		lowStockCh <- lowStockResult{out, nil}
	}()
	go func() {
		items, err := uc.analyticsRepo.ListRecentSales(ctx, since, dashboardRecentSales)
		if err != nil {
			recentCh <- recentResult{nil, err}
			return
		}
		out := make([]dto.SaleResponse, 0, len(items))
		for _, item := range items {
			s := item.Sale
			out = append(out, dto.SaleResponse{
				ID:             s.ID,
				ProductID:      s.ProductID,
				ProductName:    item.ProductName,
				ProductSKU:     item.ProductSKU,
				SoldBy:         s.SoldBy,
				SoldByUsername: item.SoldByUsername,
				Quantity:       s.Quantity,
				UnitPrice:      s.UnitPrice,
				Total:          s.Total(),
				Reference:      s.Reference,
				Notes:          s.Notes,
				CreatedAt:      s.CreatedAt,
				UpdatedAt:      s.UpdatedAt,
			})
		}
		recentCh <- recentResult{out, nil}
	}()

	totals := <-totalsCh
	revenue := <-revenueCh
	lowStock := <-lowStockCh
	recent := <-recentCh

	for _, err := range []error{totals.err, revenue.err, lowStock.err, recent.err} {
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	return &dto.DashboardDTO{
		TotalProducts:     totals.totals.Products,
		LowStockCount:     totals.totals.LowStock,
		LowStockProducts:  lowStock.products,
		RecentSales:       recent.sales,
		RevenueLast30Days: revenue.revenue,
	}, nil
}

// GetSummary construye la analítica completa (solo gerentes): totales, ingresos
// de 30 días, productos más vendidos y ventas por usuario.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.AnalyticsSummaryDTO, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -revenueWindowDays)

	totals, err := uc.analyticsRepo.GetTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics totals: %w", err)
	}
	revenue, err := uc.analyticsRepo.GetRevenue(ctx, since, now)
	if err != nil {
		return nil, fmt.Errorf("analytics revenue: %w", err)
	}
	top, err := uc.analyticsRepo.GetTopProducts(ctx, since, now, analyticsTopProducts)
	if err != nil {
		return nil, fmt.Errorf("analytics top products: %w", err)
	}
	byUser, err := uc.analyticsRepo.GetSalesByUser(ctx, since, now)
	if err != nil {
		return nil, fmt.Errorf("analytics sales by user: %w", err)
	}

	out := &dto.AnalyticsSummaryDTO{
		TotalProducts:     totals.Products,
		TotalSuppliers:    totals.Suppliers,
		TotalSales:        totals.Sales,
		LowStockCount:     totals.LowStock,
		RevenueLast30Days: revenue,
		TopProducts:       make([]dto.TopProductDTO, 0, len(top)),
		SalesByUser:       make([]dto.UserSalesDTO, 0, len(byUser)),
	}
	for _, t := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			TotalQty:    t.TotalQty,
		})
	}
	for _, u := range byUser {
		out.SalesByUser = append(out.SalesByUser, dto.UserSalesDTO{
			UserID:       u.UserID,
			Username:     u.Username,
			TotalSales:   u.TotalSales,
			TotalRevenue: u.TotalRevenue,
		})
	}
	return out, nil
}
