package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/engine"
)

// PassengerHandler exposes passenger create/update/delete. All three
// run through the engine's validation gate; deletion cascades to the
// passenger's tickets.
type PassengerHandler struct {
	Engine *engine.Engine
}

// NewPassengerHandler constructs a PassengerHandler.
func NewPassengerHandler(eng *engine.Engine) *PassengerHandler {
	if eng == nil {
		panic("nil engine passed to NewPassengerHandler")
	}
	return &PassengerHandler{Engine: eng}
}

type passengerBody struct {
	FirstName   string  `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth string  `json:"date_of_birth"` // YYYY-MM-DD
	Email       *string `json:"email"`
	Phone       string  `json:"phone"`
}

func (b *passengerBody) toFields() (engine.PassengerFields, error) {
	dob, err := time.Parse(database.DateLayout, strings.TrimSpace(b.DateOfBirth))
	if err != nil {
		return engine.PassengerFields{}, err
	}
	return engine.PassengerFields{
		FirstName:   strings.TrimSpace(b.FirstName),
		LastName:    b.LastName,
		DateOfBirth: dob,
		Email:       b.Email,
		Phone:       strings.TrimSpace(b.Phone),
	}, nil
}

// Create handles POST /v1/passengers.
func (h *PassengerHandler) Create(c echo.Context) error {
	var body passengerBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	fields, err := body.toFields()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
	}
	id, err := h.Engine.CreatePassenger(c.Request().Context(), fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PUT /v1/passengers/:id with a full field set.
func (h *PassengerHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger id"})
	}
	var body passengerBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	fields, err := body.toFields()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
	}
	if err := h.Engine.UpdatePassenger(c.Request().Context(), id, fields); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/passengers/:id, cascading to the
// passenger's tickets.
func (h *PassengerHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger id"})
	}
	if err := h.Engine.DeletePassenger(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
