package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/engine"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/queue"
	queue_publisher "github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/service"
)

// TicketHandler exposes booking, reschedule and cancellation. The
// engine owns atomicity; this layer only binds requests, maps errors
// and emits the post-commit booking event.
type TicketHandler struct {
	Engine *engine.Engine
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(eng *engine.Engine) *TicketHandler {
	if eng == nil {
		panic("nil engine passed to NewTicketHandler")
	}
	return &TicketHandler{Engine: eng}
}

// Book handles POST /v1/tickets. Timestamps are RFC 3339; arrives_at
// may be omitted for an open-ended ticket.
func (h *TicketHandler) Book(c echo.Context) error {
	var body struct {
		TrainID       uint64     `json:"train_id"`
		PassengerID   uint64     `json:"passenger_id"`
		FromStationID uint64     `json:"from_station_id"`
		ToStationID   uint64     `json:"to_station_id"`
		DepartsAt     time.Time  `json:"departs_at"`
		ArrivesAt     *time.Time `json:"arrives_at"`
		CoachID       uint64     `json:"coach_id"`
		SeatNumber    uint32     `json:"seat_number"`
		FareCents     uint32     `json:"fare_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TrainID == 0 || body.PassengerID == 0 || body.FromStationID == 0 ||
		body.ToStationID == 0 || body.CoachID == 0 || body.SeatNumber == 0 || body.DepartsAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "train_id, passenger_id, stations, coach_id, seat_number and departs_at are required"})
	}
	req := engine.BookingRequest{
		TrainID:       body.TrainID,
		PassengerID:   body.PassengerID,
		FromStationID: body.FromStationID,
		ToStationID:   body.ToStationID,
		DepartsAt:     body.DepartsAt,
		ArrivesAt:     body.ArrivesAt,
		CoachID:       body.CoachID,
		SeatNumber:    body.SeatNumber,
		FareCents:     body.FareCents,
	}
	id, err := h.Engine.BookTicket(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	go h.publishBooked(id)
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Reschedule handles PATCH /v1/tickets/:id. Absent fields keep
// their current values; clear_arrival turns the ticket open-ended.
func (h *TicketHandler) Reschedule(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var body struct {
		CoachID      *uint64    `json:"coach_id"`
		SeatNumber   *uint32    `json:"seat_number"`
		DepartsAt    *time.Time `json:"departs_at"`
		ArrivesAt    *time.Time `json:"arrives_at"`
		ClearArrival bool       `json:"clear_arrival"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	change := engine.ChangeRequest{
		NewCoachID:    body.CoachID,
		NewSeatNumber: body.SeatNumber,
		NewDepartsAt:  body.DepartsAt,
		NewArrivesAt:  body.ArrivesAt,
		ClearArrival:  body.ClearArrival,
	}
	if err := h.Engine.RescheduleTicket(c.Request().Context(), id, change); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel handles DELETE /v1/tickets/:id.
func (h *TicketHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	if err := h.Engine.CancelTicket(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// publishBooked assembles and publishes the ticket.booked event.
// Failures are logged by the publisher and otherwise ignored; the
// booking already committed.
func (h *TicketHandler) publishBooked(ticketID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t, err := h.Engine.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		return
	}
	train, err := h.Engine.Trains().GetByID(ctx, t.TrainID)
	if err != nil {
		return
	}
	coach, err := h.Engine.Coaches().GetByID(ctx, t.CoachID)
	if err != nil {
		return
	}
	from, err := h.Engine.Stations().GetByID(ctx, t.FromStationID)
	if err != nil {
		return
	}
	to, err := h.Engine.Stations().GetByID(ctx, t.ToStationID)
	if err != nil {
		return
	}
	ev := queue.TicketBookedEvent{
		EventID:     uuid.NewString(),
		TicketID:    t.ID,
		PassengerID: t.PassengerID,
		TrainName:   train.Name,
		CoachCode:   coach.Code,
		SeatNumber:  t.SeatNumber,
		FromStation: from.Name,
		ToStation:   to.Name,
		DepartsAt:   t.DepartsAt.Format(database.TimeLayout),
		FareCents:   t.FareCents,
		BookedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if t.ArrivesAt != nil {
		arr := t.ArrivesAt.Format(database.TimeLayout)
		ev.ArrivesAt = &arr
	}
	_ = queue_publisher.PublishTicketBooked(ctx, ev)
}
