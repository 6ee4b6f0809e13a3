package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/engine"
)

// ViewsHandler exposes the privacy-preserving read surface: the
// masked active-passenger and active-ticket views and the per-train
// stop listing. The raw stores are never served directly.
type ViewsHandler struct {
	Engine *engine.Engine
}

// NewViewsHandler constructs a ViewsHandler.
func NewViewsHandler(eng *engine.Engine) *ViewsHandler {
	if eng == nil {
		panic("nil engine passed to NewViewsHandler")
	}
	return &ViewsHandler{Engine: eng}
}

// ActivePassengers handles GET /v1/passengers/active.
func (h *ViewsHandler) ActivePassengers(c echo.Context) error {
	rows, err := h.Engine.ListActivePassengers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// ActiveTickets handles GET /v1/tickets/active with optional
// ?train_id= and ?passenger_id= filters.
func (h *ViewsHandler) ActiveTickets(c echo.Context) error {
	var filter engine.TicketFilter
	if v := c.QueryParam("train_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train_id"})
		}
		filter.TrainID = &id
	}
	if v := c.QueryParam("passenger_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger_id"})
		}
		filter.PassengerID = &id
	}
	rows, err := h.Engine.ListActiveTickets(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// TrainStops handles GET /v1/trains/:id/stops.
func (h *ViewsHandler) TrainStops(c echo.Context) error {
	trainID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	rows, err := h.Engine.ListTrainStops(c.Request().Context(), trainID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
