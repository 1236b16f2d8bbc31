package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
)

var ticketWithTrainTestColumns = []string{
	"id", "pnr_number", "booking_id", "account_id", "train_number", "journey_date",
	"passenger_name", "passenger_gender", "coach_number", "coach_type",
	"seat_number", "ticket_fare", "booking_status", "cancellation_timestamp", "created_at",
	"train_name", "source_station_name", "destination_station_name",
	"source_departure_time", "journey_duration",
}

func newTicketQueryService(t *testing.T) (*TicketQueryService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	svc := NewTicketQueryService(
		database.NewTicketRepository(sqlxDB),
		database.NewBookingRepository(sqlxDB),
	)
	return svc, mock
}

func ticketRow(rows *sqlmock.Rows, id, pnrNumber, bookingID string, journeyDate time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, pnrNumber, bookingID, "acct-1", "101", journeyDate,
		"Nimal Perera", "Male", "A1", "AC",
		12, 1500.0, "Confirmed", nil, time.Now(),
		"Udarata Menike", "Colombo Fort", "Badulla",
		"05:55", "09:30",
	)
}

func TestGetTicketByPNR(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc, mock := newTicketQueryService(t)

		journeyDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		rows := ticketRow(sqlmock.NewRows(ticketWithTrainTestColumns), "ticket-1", "A1B2C3D4E5", "booking-1", journeyDate)
		mock.ExpectQuery(`SELECT (.+) FROM tickets t JOIN trains tr`).
			WithArgs("A1B2C3D4E5").
			WillReturnRows(rows)

		ticket, err := svc.GetTicketByPNR("A1B2C3D4E5")
		require.NoError(t, err)
		assert.Equal(t, "A1B2C3D4E5", ticket.PNRNumber)
		assert.Equal(t, "Udarata Menike", ticket.TrainName)
		assert.Equal(t, 12, ticket.SeatNumber)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, mock := newTicketQueryService(t)

		mock.ExpectQuery(`SELECT (.+) FROM tickets t JOIN trains tr`).
			WithArgs("ZZZZZZZZZZ").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.GetTicketByPNR("ZZZZZZZZZZ")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Contains(t, err.Error(), "ZZZZZZZZZZ")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetAccountBookings(t *testing.T) {
	t.Run("Groups Tickets By Booking", func(t *testing.T) {
		svc, mock := newTicketQueryService(t)

		now := time.Now()
		journeyDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE account_id`).
			WithArgs("acct-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "total_amount", "payment_status", "status", "booking_timestamp"}).
				AddRow("booking-2", "acct-1", 3000.0, "Paid", "Confirmed", now).
				AddRow("booking-1", "acct-1", 1500.0, "Paid", "Confirmed", now.Add(-time.Hour)))

		rows := sqlmock.NewRows(ticketWithTrainTestColumns)
		rows = ticketRow(rows, "ticket-1", "AAAAAAAAAA", "booking-1", journeyDate)
		rows = ticketRow(rows, "ticket-2", "BBBBBBBBBB", "booking-2", journeyDate)
		rows = ticketRow(rows, "ticket-3", "CCCCCCCCCC", "booking-2", journeyDate)
		mock.ExpectQuery(`SELECT (.+) FROM tickets t JOIN trains tr`).
			WithArgs("booking-2", "booking-1").
			WillReturnRows(rows)

		history, err := svc.GetAccountBookings("acct-1")
		require.NoError(t, err)
		require.Len(t, history, 2)

		// Most recent booking first, each with its own tickets.
		assert.Equal(t, "booking-2", history[0].Booking.ID)
		require.Len(t, history[0].Tickets, 2)
		assert.Equal(t, "BBBBBBBBBB", history[0].Tickets[0].PNRNumber)
		assert.Equal(t, "CCCCCCCCCC", history[0].Tickets[1].PNRNumber)

		assert.Equal(t, "booking-1", history[1].Booking.ID)
		require.Len(t, history[1].Tickets, 1)
		assert.Equal(t, "AAAAAAAAAA", history[1].Tickets[0].PNRNumber)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Bookings", func(t *testing.T) {
		svc, mock := newTicketQueryService(t)

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE account_id`).
			WithArgs("acct-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "total_amount", "payment_status", "status", "booking_timestamp"}))

		history, err := svc.GetAccountBookings("acct-1")
		require.NoError(t, err)
		assert.Empty(t, history)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
