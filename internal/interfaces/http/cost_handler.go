package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/atelier-stock/internal/application/costs"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
)

// CostHandler maneja los costos mensuales.
type CostHandler struct {
	uc *costs.UseCase
}

// NewCostHandler construye el handler.
func NewCostHandler(uc *costs.UseCase) *CostHandler {
	return &CostHandler{uc: uc}
}

// GetByMonth godoc
// @Summary      Costos de un mes (YYYY-MM); sin fila devuelve ceros
// @Tags         costs
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.MonthlyCostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costs/{month} [get]
func (h *CostHandler) GetByMonth(c *fiber.Ctx) error {
	resp, err := h.uc.GetByMonth(c.Context(), c.Params("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Upsert godoc
// @Summary      Crear o reemplazar los costos de un mes
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        month  path  string                        true  "YYYY-MM"
// @Param        body   body  dto.UpsertMonthlyCostRequest  true  "las tres categorías, >= 0"
// @Success      200  {object}  dto.MonthlyCostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costs/{month} [put]
func (h *CostHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertMonthlyCostRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Upsert(c.Context(), c.Params("month"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// UpdateField godoc
// @Summary      Actualizar una sola categoría de costo del mes
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        month  path  string                      true  "YYYY-MM"
// @Param        body   body  dto.UpdateCostFieldRequest  true  "field y value"
// @Success      200  {object}  dto.MonthlyCostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costs/{month} [patch]
func (h *CostHandler) UpdateField(c *fiber.Ctx) error {
	var in dto.UpdateCostFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdateField(c.Context(), c.Params("month"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
