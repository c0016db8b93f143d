package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, sold_by, quantity, unit_price, reference, notes, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una nueva venta y asigna el ID generado.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (product_id, sold_by, quantity, unit_price, reference, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sale.ProductID, sale.SoldBy, sale.Quantity, sale.UnitPrice,
		sale.Reference, sale.Notes, sale.CreatedAt, sale.UpdatedAt,
	).Scan(&sale.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := scanSale(r.q.QueryRow(context.Background(), query, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update actualiza cantidad y notas de una venta. UnitPrice no cambia:
// es el snapshot tomado al registrar la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET quantity = $2, notes = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Quantity, sale.Notes, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas con nombres de producto y vendedor resueltos,
// filtrables por producto, usuario y rango de fechas.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]repository.SaleListItem, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT s.id, s.product_id, s.sold_by, s.quantity, s.unit_price, s.reference, s.notes, s.created_at, s.updated_at,
		       p.name, p.sku, u.username
		FROM sales s
		JOIN products p ON p.id = s.product_id
		JOIN users u ON u.id = s.sold_by`)

	var conds []string
	var args []any
	if filter.ProductID != 0 {
		args = append(args, filter.ProductID)
		conds = append(conds, "s.product_id = $"+strconv.Itoa(len(args)))
	}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, "s.sold_by = $"+strconv.Itoa(len(args)))
	}
	if filter.Start != nil {
		args = append(args, *filter.Start)
		conds = append(conds, "s.created_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		conds = append(conds, "s.created_at < $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY s.created_at DESC")
	args = append(args, filter.Limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
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
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSale(row pgx.Row, s *entity.Sale) error {
	return row.Scan(
		&s.ID, &s.ProductID, &s.SoldBy, &s.Quantity, &s.UnitPrice,
		&s.Reference, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
}
