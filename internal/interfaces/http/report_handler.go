package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/reports"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// ReportHandler expone los reportes PDF descargables (solo gerentes).
type ReportHandler struct {
	uc *reports.SalesReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.SalesReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF
// @Description  Sin parámetros cubre los últimos 30 días.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  false  "Desde (2006-01-02)"
// @Param        end    query  string  false  "Hasta (2006-01-02, día completo incluido)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now
	if v := c.Query("start"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido"})
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := parseEndDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido"})
		}
		end = t
	}

	pdfBytes, err := h.uc.Generate(c.UserContext(), start, end)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango de fechas es inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(pdfBytes)
}
