package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	appactivity "github.com/tu-usuario/atelier-stock/internal/application/activity"
	"github.com/tu-usuario/atelier-stock/internal/application/analytics"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
)

// ActivityHandler maneja las peticiones HTTP del ledger de actividades.
type ActivityHandler struct {
	coordinator *appactivity.Coordinator
	analytics   *analytics.UseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(coordinator *appactivity.Coordinator, analyticsUC *analytics.UseCase) *ActivityHandler {
	return &ActivityHandler{coordinator: coordinator, analytics: analyticsUC}
}

// Create godoc
// @Summary      Registrar una actividad del ledger
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivityRequest  true  "date, type, product_id (obligatorio para SALE/STOCK_CORRECTION), quantity, amount, note"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.coordinator.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Actualizar parcialmente una actividad
// @Description  Solo cambian los campos presentes en el payload; enviar null
//
//	borra el campo (no permitido para productId de ventas/correcciones).
//
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la actividad"
// @Param        body  body  dto.UpdateActivityRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [put]
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateActivityRequest
	// json.Unmarshal directo: BodyParser no conserva la semántica de
	// presencia por clave que necesita Optional.
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.coordinator.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listado paginado del ledger
// @Tags         activities
// @Produce      json
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601 (fecha sola = fin de día)"
// @Param        type        query  string  false  "CREATION|SALE|STOCK_CORRECTION|OTHER"
// @Param        product_id  query  string  false  "acotar a un producto"
// @Param        page        query  int     false  "página (1-indexada)"
// @Param        page_size   query  int     false  "tamaño de página (default 20)"
// @Success      200  {object}  dto.ActivityListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var filter dto.ActivityFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	resp, err := h.analytics.ListActivities(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
