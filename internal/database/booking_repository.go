package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/railbook/train-booking-backend/internal/models"
)

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Insert writes the booking record inside the caller's reservation
// transaction.
func (r *BookingRepository) Insert(tx *sqlx.Tx, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (account_id, total_amount, payment_status, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booking_timestamp`

	err := tx.QueryRowx(query,
		booking.AccountID, booking.TotalAmount, booking.PaymentStatus, booking.Status,
	).Scan(&booking.ID, &booking.BookingTimestamp)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// ListByAccount returns an account's bookings, most recent first
func (r *BookingRepository) ListByAccount(accountID string) ([]models.Booking, error) {
	query := `
		SELECT id, account_id, total_amount, payment_status, status, booking_timestamp
		FROM bookings
		WHERE account_id = $1
		ORDER BY booking_timestamp DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query, accountID); err != nil {
		return nil, err
	}

	return bookings, nil
}
