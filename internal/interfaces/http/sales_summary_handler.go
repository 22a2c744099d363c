package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
)

// SalesSummaryHandler endpoints del resumen de ventas.
type SalesSummaryHandler struct {
	uc *appanalytics.SalesSummaryUseCase
}

// NewSalesSummaryHandler construye el handler.
func NewSalesSummaryHandler(uc *appanalytics.SalesSummaryUseCase) *SalesSummaryHandler {
	return &SalesSummaryHandler{uc: uc}
}

// Get godoc
// @Summary      Resumen de ventas por granularidad
// @Description  Agrupa la serie diaria en daily/weekly/monthly y calcula total, cambio promedio y pico.
//               Sin granularity se usa la del estado de vista del usuario.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        granularity  query  string  false  "daily | weekly | monthly"
// @Param        start_date   query  string  false  "Inicio (YYYY-MM-DD). Default: end_date - ventana + 1."
// @Param        end_date     query  string  false  "Fin (YYYY-MM-DD). Default: hoy."
// @Param        missing      query  string  false  "zero | exclude"
// @Param        order        query  string  false  "first_seen | chronological"
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/sales-summary [get]
func (h *SalesSummaryHandler) Get(c *fiber.Ctx) error {
	companyID, userID, ok, err := identity(c)
	if !ok {
		return err
	}
	req, ok, err := parseSalesSummaryRequest(c)
	if !ok {
		return err
	}

	summary, err := h.uc.GetSalesSummary(c.Context(), companyID, userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// ExportPDF godoc
// @Summary      Resumen de ventas en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        granularity  query  string  false  "daily | weekly | monthly"
// @Param        start_date   query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Fin (YYYY-MM-DD)"
// @Param        missing      query  string  false  "zero | exclude"
// @Param        order        query  string  false  "first_seen | chronological"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/sales-summary/pdf [get]
func (h *SalesSummaryHandler) ExportPDF(c *fiber.Ctx) error {
	companyID, userID, ok, err := identity(c)
	if !ok {
		return err
	}
	req, ok, err := parseSalesSummaryRequest(c)
	if !ok {
		return err
	}

	pdfBytes, filename, err := h.uc.ExportSalesSummaryPDF(c.Context(), companyID, userID, req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func parseSalesSummaryRequest(c *fiber.Ctx) (dto.SalesSummaryRequest, bool, error) {
	var req dto.SalesSummaryRequest
	if err := c.QueryParser(&req); err != nil {
		return req, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	ok, err := validateStruct(c, req)
	return req, ok, err
}
