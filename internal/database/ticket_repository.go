package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/railbook/train-booking-backend/internal/models"
)

// TicketRepository handles ticket database operations
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Insert writes one ticket inside the caller's reservation transaction. The
// pnr_number UNIQUE constraint backstops reference generation; a violation
// fails the whole transaction.
func (r *TicketRepository) Insert(tx *sqlx.Tx, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (
			pnr_number, booking_id, account_id, train_number, journey_date,
			passenger_name, passenger_gender, coach_number, coach_type,
			seat_number, ticket_fare, booking_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := tx.QueryRowx(query,
		ticket.PNRNumber, ticket.BookingID, ticket.AccountID, ticket.TrainNumber, ticket.JourneyDate,
		ticket.PassengerName, ticket.PassengerGender, ticket.CoachNumber, ticket.CoachType,
		ticket.SeatNumber, ticket.TicketFare, ticket.BookingStatus,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("duplicate PNR %s: %w", ticket.PNRNumber, err)
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

const ticketWithTrainColumns = `
	t.id, t.pnr_number, t.booking_id, t.account_id, t.train_number, t.journey_date,
	t.passenger_name, t.passenger_gender, t.coach_number, t.coach_type,
	t.seat_number, t.ticket_fare, t.booking_status, t.cancellation_timestamp, t.created_at,
	tr.train_name, tr.source_station_name, tr.destination_station_name,
	tr.source_departure_time, tr.journey_duration`

// GetByPNR returns a ticket joined with its train summary
func (r *TicketRepository) GetByPNR(pnrNumber string) (*models.TicketWithTrain, error) {
	ticket := &models.TicketWithTrain{}
	query := `
		SELECT ` + ticketWithTrainColumns + `
		FROM tickets t
		JOIN trains tr ON tr.train_number = t.train_number
		WHERE t.pnr_number = $1`

	if err := r.db.Get(ticket, query, pnrNumber); err != nil {
		return nil, err
	}

	return ticket, nil
}

// ListByBookingIDs returns tickets with train summaries for a set of
// bookings, grouped by the caller.
func (r *TicketRepository) ListByBookingIDs(bookingIDs []string) ([]models.TicketWithTrain, error) {
	if len(bookingIDs) == 0 {
		return []models.TicketWithTrain{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+ticketWithTrainColumns+`
		FROM tickets t
		JOIN trains tr ON tr.train_number = t.train_number
		WHERE t.booking_id IN (?)
		ORDER BY t.created_at`, bookingIDs)
	if err != nil {
		return nil, err
	}

	query = r.db.Rebind(query)

	var tickets []models.TicketWithTrain
	if err := r.db.Select(&tickets, query, args...); err != nil {
		return nil, err
	}

	return tickets, nil
}
