package engine

import (
	"context"
	"database/sql"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
)

// The privacy projector is the read surface callers should use. It
// derives masked views over the passenger and ticket stores at query
// time — never materialized, so they cannot go stale. Contact
// details are masked and fully elapsed tickets (and the passengers
// left with none) are hidden.

// maskPhone redacts a phone number to a fixed 6-character mask
// followed by its last four digits.
func maskPhone(phone string) string {
	const mask = "******"
	if len(phone) < 4 {
		return mask
	}
	return mask + phone[len(phone)-4:]
}

// ActivePassenger is a row of the active-passenger view: passenger
// fields with the phone masked, restricted to passengers holding at
// least one active ticket.
type ActivePassenger struct {
	ID          uint64  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    *string `json:"last_name,omitempty"`
	DateOfBirth string  `json:"date_of_birth"`
	Email       *string `json:"email,omitempty"`
	MaskedPhone string  `json:"phone"`
}

// ActiveTicket is a row of the active-ticket view: ticket fields
// joined with the holder's name and masked phone, restricted to
// tickets whose travel window has not fully elapsed.
type ActiveTicket struct {
	ID            uint64  `json:"id"`
	TrainID       uint64  `json:"train_id"`
	TrainName     string  `json:"train_name"`
	PassengerID   uint64  `json:"passenger_id"`
	PassengerName string  `json:"passenger_name"`
	MaskedPhone   string  `json:"passenger_phone"`
	FromStation   string  `json:"from_station"`
	ToStation     string  `json:"to_station"`
	DepartsAt     string  `json:"departs_at"`
	ArrivesAt     *string `json:"arrives_at,omitempty"`
	CoachCode     string  `json:"coach"`
	SeatNumber    uint32  `json:"seat_number"`
	FareCents     uint32  `json:"fare_cents"`
}

// TrainStop is a row of the train-stops listing: the ordered catalog
// path joined against active tickets for the earliest scheduled
// departure at each stop.
type TrainStop struct {
	StationID          uint64  `json:"station_id"`
	StationName        string  `json:"station_name"`
	Position           uint32  `json:"position"`
	ScheduledDeparture *string `json:"scheduled_departure,omitempty"`
}

// TicketFilter narrows the active-ticket view by train and/or
// passenger. Nil fields match everything.
type TicketFilter struct {
	TrainID     *uint64
	PassengerID *uint64
}

// activePredicate is the shared view filter: the offset-adjusted
// clock is before departure, or arrival is unset, or the clock is
// before arrival. Stored times compare correctly as strings.
const activePredicate = `(t.departs_at > ? OR t.arrives_at IS NULL OR t.arrives_at > ?)`

func (e *Engine) viewThreshold() string {
	return e.clock.Now().UTC().Add(e.localOffset).Format(database.TimeLayout)
}

// ListActivePassengers returns the active-passenger view.
func (e *Engine) ListActivePassengers(ctx context.Context) ([]ActivePassenger, error) {
	threshold := e.viewThreshold()
	rows, err := e.db.QueryContext(ctx,
		`SELECT DISTINCT p.id, p.first_name, p.last_name, p.date_of_birth, p.email, p.phone
		 FROM passengers p
		 JOIN tickets t ON t.passenger_id = p.id
		 WHERE `+activePredicate+`
		 ORDER BY p.id`,
		threshold, threshold,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ActivePassenger, 0)
	for rows.Next() {
		var ap ActivePassenger
		var last, email sql.NullString
		var phone string
		if err := rows.Scan(&ap.ID, &ap.FirstName, &last, &ap.DateOfBirth, &email, &phone); err != nil {
			return nil, err
		}
		if last.Valid {
			ln := last.String
			ap.LastName = &ln
		}
		if email.Valid {
			em := email.String
			ap.Email = &em
		}
		ap.MaskedPhone = maskPhone(phone)
		out = append(out, ap)
	}
	return out, rows.Err()
}

// ListActiveTickets returns the active-ticket view, optionally
// filtered by train and/or passenger.
func (e *Engine) ListActiveTickets(ctx context.Context, filter TicketFilter) ([]ActiveTicket, error) {
	threshold := e.viewThreshold()
	q := `SELECT t.id, t.train_id, tr.name, t.passenger_id,
			p.first_name, p.last_name, p.phone,
			sf.name, st.name, t.departs_at, t.arrives_at, c.code, t.seat_number, t.fare_cents
		FROM tickets t
		JOIN trains tr ON tr.id = t.train_id
		JOIN passengers p ON p.id = t.passenger_id
		JOIN stations sf ON sf.id = t.from_station_id
		JOIN stations st ON st.id = t.to_station_id
		JOIN coaches c ON c.id = t.coach_id
		WHERE ` + activePredicate
	args := []interface{}{threshold, threshold}
	if filter.TrainID != nil {
		q += ` AND t.train_id = ?`
		args = append(args, *filter.TrainID)
	}
	if filter.PassengerID != nil {
		q += ` AND t.passenger_id = ?`
		args = append(args, *filter.PassengerID)
	}
	q += ` ORDER BY t.departs_at, t.id`
	rows, err := e.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ActiveTicket, 0)
	for rows.Next() {
		var at ActiveTicket
		var first string
		var last, arrives sql.NullString
		var phone string
		if err := rows.Scan(&at.ID, &at.TrainID, &at.TrainName, &at.PassengerID,
			&first, &last, &phone,
			&at.FromStation, &at.ToStation, &at.DepartsAt, &arrives,
			&at.CoachCode, &at.SeatNumber, &at.FareCents); err != nil {
			return nil, err
		}
		at.PassengerName = first
		if last.Valid && last.String != "" {
			at.PassengerName = first + " " + last.String
		}
		if arrives.Valid && arrives.String != "" {
			arr := arrives.String
			at.ArrivesAt = &arr
		}
		at.MaskedPhone = maskPhone(phone)
		out = append(out, at)
	}
	return out, rows.Err()
}

// ListTrainStops returns the ordered stops of a train with the
// earliest active scheduled departure at each stop, when one exists.
func (e *Engine) ListTrainStops(ctx context.Context, trainID uint64) ([]TrainStop, error) {
	ok, err := e.trainExists(ctx, trainID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrTrainNotFound
	}
	threshold := e.viewThreshold()
	rows, err := e.db.QueryContext(ctx,
		`SELECT rs.station_id, s.name, rs.position, MIN(t.departs_at)
		 FROM route_stops rs
		 JOIN stations s ON s.id = rs.station_id
		 LEFT JOIN tickets t ON t.train_id = rs.train_id
			AND t.from_station_id = rs.station_id
			AND `+activePredicate+`
		 WHERE rs.train_id = ?
		 GROUP BY rs.station_id, s.name, rs.position
		 ORDER BY rs.position`,
		threshold, threshold, trainID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TrainStop, 0)
	for rows.Next() {
		var ts TrainStop
		var departs sql.NullString
		if err := rows.Scan(&ts.StationID, &ts.StationName, &ts.Position, &departs); err != nil {
			return nil, err
		}
		if departs.Valid && departs.String != "" {
			d := departs.String
			ts.ScheduledDeparture = &d
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (e *Engine) trainExists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := e.db.QueryRowContext(ctx, `SELECT 1 FROM trains WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
