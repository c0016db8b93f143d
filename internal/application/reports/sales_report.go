// Package reports genera reportes descargables para gerencia.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const reportMaxRows = 500 // tope de filas por reporte

// SalesReportData datos ya resueltos que recibe el generador.
type SalesReportData struct {
	Start        time.Time
	End          time.Time
	Rows         []repository.SaleListItem
	TotalUnits   int64
	TotalRevenue decimal.Decimal
	GeneratedAt  time.Time
}

// SalesReportGenerator es el puerto de renderizado del reporte (lo implementa
// la infraestructura PDF).
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, data *SalesReportData) ([]byte, error)
}

// SalesReportUseCase arma el reporte de ventas de un período y lo renderiza.
type SalesReportUseCase struct {
	saleRepo  repository.SaleRepository
	generator SalesReportGenerator
}

// NewSalesReportUseCase construye el caso de uso.
func NewSalesReportUseCase(saleRepo repository.SaleRepository, generator SalesReportGenerator) *SalesReportUseCase {
	return &SalesReportUseCase{saleRepo: saleRepo, generator: generator}
}

// Generate produce el PDF de ventas desde start (inclusive) hasta end
// (cota exclusiva sobre created_at). Quien quiera incluir un día completo
// debe pasar la medianoche del día siguiente como end.
func (uc *SalesReportUseCase) Generate(ctx context.Context, start, end time.Time) ([]byte, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.saleRepo.List(repository.SaleFilter{
		Start: &start,
		End:   &end,
		Limit: reportMaxRows,
	})
	if err != nil {
		return nil, fmt.Errorf("sales report query: %w", err)
	}

	data := &SalesReportData{
		Start:        start,
		End:          end,
		Rows:         rows,
		TotalRevenue: decimal.Zero,
		GeneratedAt:  time.Now(),
	}
	for _, r := range rows {
		data.TotalUnits += int64(r.Sale.Quantity)
		data.TotalRevenue = data.TotalRevenue.Add(r.Sale.Total())
	}
	return uc.generator.GenerateSalesReport(ctx, data)
}
