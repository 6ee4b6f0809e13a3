// Package handler implements the HTTP surface over the reservation
// engine. Handlers bind and sanity-check request bodies, delegate to
// the engine (which owns the transactional pipeline), and translate
// its typed errors to HTTP statuses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/engine"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// respondError maps engine and repository errors onto HTTP statuses.
// Referential failures are 404, state conflicts 409, invariant
// violations 422; anything unrecognized is a 500 with a generic body
// so internal details never leak.
func respondError(c echo.Context, err error) error {
	var conflict *engine.SeatConflictError
	if errors.As(err, &conflict) {
		body := echo.Map{
			"error":              "seat_conflict",
			"message":            conflict.Error(),
			"existing_ticket_id": conflict.ExistingID,
			"existing_departure": conflict.ExistingDeparture,
		}
		if conflict.ExistingArrival != nil {
			body["existing_arrival"] = *conflict.ExistingArrival
		}
		return c.JSON(http.StatusConflict, body)
	}
	switch {
	case errors.Is(err, repository.ErrStationNotFound),
		errors.Is(err, repository.ErrCoachNotFound),
		errors.Is(err, repository.ErrTrainNotFound),
		errors.Is(err, repository.ErrPassengerNotFound),
		errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrStopInUse),
		errors.Is(err, repository.ErrDuplicateStop):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotAStop),
		errors.Is(err, engine.ErrAgeOutOfRange),
		errors.Is(err, engine.ErrMalformedPhone),
		errors.Is(err, engine.ErrIntervalOrder),
		errors.Is(err, engine.ErrFareNotPositive),
		errors.Is(err, engine.ErrSameStations),
		errors.Is(err, engine.ErrSameTerminals),
		errors.Is(err, engine.ErrFirstNameRequired):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
