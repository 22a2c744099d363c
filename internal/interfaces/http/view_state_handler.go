package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-dashboard/internal/application/dashboard"
	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
)

// ViewStateHandler estado de vista del dashboard del usuario autenticado.
type ViewStateHandler struct {
	uc *dashboard.ViewStateUseCase
}

// NewViewStateHandler construye el handler.
func NewViewStateHandler(uc *dashboard.ViewStateUseCase) *ViewStateHandler {
	return &ViewStateHandler{uc: uc}
}

// Get godoc
// @Summary      Estado de vista del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ViewStateDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/view-state [get]
func (h *ViewStateHandler) Get(c *fiber.Ctx) error {
	companyID, userID, ok, err := identity(c)
	if !ok {
		return err
	}
	state, err := h.uc.Get(c.Context(), companyID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

// ToggleSidebar godoc
// @Summary      Colapsar/expandir el sidebar
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ViewStateDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dashboard/view-state/sidebar/toggle [post]
func (h *ViewStateHandler) ToggleSidebar(c *fiber.Ctx) error {
	companyID, userID, ok, err := identity(c)
	if !ok {
		return err
	}
	state, err := h.uc.ToggleSidebar(c.Context(), companyID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

// SetGranularity godoc
// @Summary      Guardar la granularidad seleccionada
// @Tags         dashboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SetGranularityRequest  true  "granularity: daily | weekly | monthly"
// @Success      200   {object}  dto.ViewStateDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/view-state/granularity [put]
func (h *ViewStateHandler) SetGranularity(c *fiber.Ctx) error {
	companyID, userID, ok, err := identity(c)
	if !ok {
		return err
	}
	var in dto.SetGranularityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ok, err := validateStruct(c, in); !ok {
		return err
	}
	state, err := h.uc.SetGranularity(c.Context(), companyID, userID, in.Granularity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}
