package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/engine"
)

// CatalogHandler administers the static reference data: stations,
// coaches, trains and their ordered route stops. The engine never
// mutates this data; it only validates bookings against it.
type CatalogHandler struct {
	Engine *engine.Engine
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(eng *engine.Engine) *CatalogHandler {
	if eng == nil {
		panic("nil engine passed to NewCatalogHandler")
	}
	return &CatalogHandler{Engine: eng}
}

// CreateStation handles POST /v1/stations.
func (h *CatalogHandler) CreateStation(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	id, err := h.Engine.Stations().Create(c.Request().Context(), body.Name, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "station name already exists"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": body.Name})
}

// ListStations handles GET /v1/stations.
func (h *CatalogHandler) ListStations(c echo.Context) error {
	stations, err := h.Engine.Stations().List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stations)
}

// CreateCoach handles POST /v1/coaches.
func (h *CatalogHandler) CreateCoach(c echo.Context) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Code = strings.TrimSpace(body.Code)
	if body.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}
	id, err := h.Engine.Coaches().Create(c.Request().Context(), body.Code, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "coach code already exists"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "code": body.Code})
}

// CreateTrain handles POST /v1/trains. The two terminal stations
// must exist and differ.
func (h *CatalogHandler) CreateTrain(c echo.Context) error {
	var body struct {
		Name       string `json:"name"`
		Station1ID uint64 `json:"station1_id"`
		Station2ID uint64 `json:"station2_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || body.Station1ID == 0 || body.Station2ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, station1_id and station2_id are required"})
	}
	if body.Station1ID == body.Station2ID {
		return respondError(c, engine.ErrSameTerminals)
	}
	ctx := c.Request().Context()
	for _, sid := range []uint64{body.Station1ID, body.Station2ID} {
		if _, err := h.Engine.Stations().GetByID(ctx, sid); err != nil {
			return respondError(c, err)
		}
	}
	id, err := h.Engine.Trains().Create(ctx, body.Name, body.Station1ID, body.Station2ID, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "train name already exists"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": body.Name})
}

// AddRouteStop handles POST /v1/trains/:id/stops. A train passes
// each of its stations at most once.
func (h *CatalogHandler) AddRouteStop(c echo.Context) error {
	trainID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	var body struct {
		StationID uint64 `json:"station_id"`
		Position  uint32 `json:"position"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.StationID == 0 || body.Position == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "station_id and position are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Engine.Trains().GetByID(ctx, trainID); err != nil {
		return respondError(c, err)
	}
	if _, err := h.Engine.Stations().GetByID(ctx, body.StationID); err != nil {
		return respondError(c, err)
	}
	id, err := h.Engine.Trains().AddStop(ctx, trainID, body.StationID, body.Position)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// DeleteRouteStop handles DELETE /v1/stops/:id. The delete is
// restricted while tickets reference the stop's station.
func (h *CatalogHandler) DeleteRouteStop(c echo.Context) error {
	stopID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stop id"})
	}
	if err := h.Engine.Trains().DeleteStop(c.Request().Context(), stopID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
