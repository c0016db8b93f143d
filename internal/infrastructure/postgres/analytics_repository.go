package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para dashboard y analítica.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetTotals devuelve los conteos globales del dashboard en una sola consulta.
func (r *AnalyticsRepo) GetTotals(ctx context.Context) (repository.Totals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active),
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COUNT(*) FROM sales),
			(SELECT COUNT(*) FROM products WHERE is_active AND quantity <= reorder_level)`
	var t repository.Totals
	err := r.q.QueryRow(ctx, query).Scan(&t.Products, &t.Suppliers, &t.Sales, &t.LowStock)
	if err != nil {
		return repository.Totals{}, fmt.Errorf("get totals: %w", err)
	}
	return t, nil
}

// GetRevenue suma quantity × unit_price de las ventas del período [start, end).
func (r *AnalyticsRepo) GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity * unit_price), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`
	var revenue decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("get revenue: %w", err)
	}
	return revenue, nil
}

// ListLowStock devuelve los productos activos con stock en o bajo su nivel
// de reposición, los más críticos primero.
func (r *AnalyticsRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND quantity <= reorder_level
		ORDER BY quantity - reorder_level, name
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetTopProducts devuelve los productos más vendidos (por unidades) del período.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT p.id, p.name, SUM(s.quantity) AS total_qty
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY p.id, p.name
		ORDER BY total_qty DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("get top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var tp repository.TopProductResult
		if err := rows.Scan(&tp.ProductID, &tp.ProductName, &tp.TotalQty); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, tp)
	}
	return list, rows.Err()
}

// GetSalesByUser agrega ventas e ingresos por vendedor en el período.
func (r *AnalyticsRepo) GetSalesByUser(ctx context.Context, start, end time.Time) ([]repository.UserSalesResult, error) {
	query := `
		SELECT u.id, u.username, COUNT(*) AS total_sales, COALESCE(SUM(s.quantity * s.unit_price), 0) AS total_revenue
		FROM sales s
		JOIN users u ON u.id = s.sold_by
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY u.id, u.username
		ORDER BY total_revenue DESC`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get sales by user: %w", err)
	}
	defer rows.Close()
	var list []repository.UserSalesResult
	for rows.Next() {
		var us repository.UserSalesResult
		if err := rows.Scan(&us.UserID, &us.Username, &us.TotalSales, &us.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan sales by user: %w", err)
		}
		list = append(list, us)
	}
	return list, rows.Err()
}

// ListRecentSales devuelve las ventas más recientes desde la fecha dada.
func (r *AnalyticsRepo) ListRecentSales(ctx context.Context, since time.Time, limit int) ([]repository.SaleListItem, error) {
	query := `
		SELECT s.id, s.product_id, s.sold_by, s.quantity, s.unit_price, s.reference, s.notes, s.created_at, s.updated_at,
		       p.name, p.sku, u.username
		FROM sales s
		JOIN products p ON p.id = s.product_id
		JOIN users u ON u.id = s.sold_by
		WHERE s.created_at >= $1
		ORDER BY s.created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleListItem
	for rows.Next() {
		var item repository.SaleListItem
		err := rows.Scan(
			&item.Sale.ID, &item.Sale.ProductID, &item.Sale.SoldBy, &item.Sale.Quantity,
			&item.Sale.UnitPrice, &item.Sale.Reference, &item.Sale.Notes,
			&item.Sale.CreatedAt, &item.Sale.UpdatedAt,
			&item.ProductName, &item.ProductSKU, &item.SoldByUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recent sale: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
