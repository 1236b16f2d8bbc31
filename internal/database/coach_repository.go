package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/railbook/train-booking-backend/internal/models"
)

// Sentinel errors for seat claim outcomes. Callers translate these into
// user-facing error kinds.
var (
	// ErrSeatNotFound means the coach or seat does not exist for the train.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrSeatUnavailable means the seat exists but is already held.
	ErrSeatUnavailable = errors.New("seat unavailable")
)

// CoachRepository handles coach and seat database operations. Coach seat
// rows are the authoritative seat ledger.
type CoachRepository struct {
	db *sqlx.DB
}

// NewCoachRepository creates a new CoachRepository
func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

// CreateCoachWithSeats inserts a coach and its full seat block in one
// transaction. Seats are numbered 1..seatCount and start available.
func (r *CoachRepository) CreateCoachWithSeats(coach *models.Coach, seatCount int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	coachQuery := `
		INSERT INTO coaches (train_number, coach_number, coach_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = tx.QueryRowx(coachQuery, coach.TrainNumber, coach.CoachNumber, coach.CoachType).
		Scan(&coach.ID, &coach.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("coach %s already exists: %w", coach.CoachNumber, err)
		}
		return fmt.Errorf("failed to create coach: %w", err)
	}

	seatQuery := `
		INSERT INTO coach_seats (coach_id, seat_number, is_available)
		VALUES ($1, $2, TRUE)
		RETURNING id`

	coach.Seats = make([]models.Seat, 0, seatCount)
	for n := 1; n <= seatCount; n++ {
		seat := models.Seat{CoachID: coach.ID, SeatNumber: n, IsAvailable: true}
		if err := tx.QueryRowx(seatQuery, coach.ID, n).Scan(&seat.ID); err != nil {
			return fmt.Errorf("failed to create seat %d: %w", n, err)
		}
		coach.Seats = append(coach.Seats, seat)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByCoachNumber returns a coach with its seat ledger
func (r *CoachRepository) GetByCoachNumber(coachNumber string) (*models.Coach, error) {
	coach := &models.Coach{}
	query := `
		SELECT id, train_number, coach_number, coach_type, created_at
		FROM coaches
		WHERE coach_number = $1`

	if err := r.db.Get(coach, query, coachNumber); err != nil {
		return nil, err
	}

	seatQuery := `
		SELECT id, coach_id, seat_number, is_available
		FROM coach_seats
		WHERE coach_id = $1
		ORDER BY seat_number`

	if err := r.db.Select(&coach.Seats, seatQuery, coach.ID); err != nil {
		return nil, fmt.Errorf("failed to load seats for coach %s: %w", coachNumber, err)
	}

	return coach, nil
}

// ListByTrainNumber returns the compact coach listing for a train
func (r *CoachRepository) ListByTrainNumber(trainNumber string) ([]models.CoachListing, error) {
	query := `
		SELECT coach_number, coach_type
		FROM coaches
		WHERE train_number = $1
		ORDER BY coach_number`

	var coaches []models.CoachListing
	if err := r.db.Select(&coaches, query, trainNumber); err != nil {
		return nil, err
	}

	return coaches, nil
}

// ListByTrainNumberWithSeats returns all coaches of a train with their seat
// ledgers, for the reservation chart.
func (r *CoachRepository) ListByTrainNumberWithSeats(trainNumber string) ([]models.Coach, error) {
	query := `
		SELECT id, train_number, coach_number, coach_type, created_at
		FROM coaches
		WHERE train_number = $1
		ORDER BY coach_number`

	var coaches []models.Coach
	if err := r.db.Select(&coaches, query, trainNumber); err != nil {
		return nil, err
	}

	seatQuery := `
		SELECT id, coach_id, seat_number, is_available
		FROM coach_seats
		WHERE coach_id = $1
		ORDER BY seat_number`

	for i := range coaches {
		if err := r.db.Select(&coaches[i].Seats, seatQuery, coaches[i].ID); err != nil {
			return nil, fmt.Errorf("failed to load seats for coach %s: %w", coaches[i].CoachNumber, err)
		}
	}

	return coaches, nil
}

// CountAvailableSeats returns how many seats of a coach are currently flagged
// available in the ledger.
func (r *CoachRepository) CountAvailableSeats(trainNumber, coachNumber string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM coach_seats cs
		JOIN coaches c ON c.id = cs.coach_id
		WHERE c.train_number = $1 AND c.coach_number = $2 AND cs.is_available = TRUE`

	var count int
	if err := r.db.Get(&count, query, trainNumber, coachNumber); err != nil {
		return 0, err
	}

	return count, nil
}

// ClaimSeat atomically flips one seat from available to unavailable and
// returns the coach's authoritative type. The conditional UPDATE is the only
// mutation path for seat state during booking: under concurrent claims the
// row lock serializes callers and at most one sees a row flip.
//
// Returns ErrSeatUnavailable if the seat exists but is already held, and
// ErrSeatNotFound if the coach or seat does not resolve.
func (r *CoachRepository) ClaimSeat(tx *sqlx.Tx, trainNumber, coachNumber string, seatNumber int) (models.CoachType, error) {
	claimQuery := `
		UPDATE coach_seats cs
		SET is_available = FALSE
		FROM coaches c
		WHERE cs.coach_id = c.id
		  AND c.train_number = $1
		  AND c.coach_number = $2
		  AND cs.seat_number = $3
		  AND cs.is_available = TRUE
		RETURNING c.coach_type`

	var coachType models.CoachType
	err := tx.QueryRowx(claimQuery, trainNumber, coachNumber, seatNumber).Scan(&coachType)
	if err == nil {
		return coachType, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to claim seat: %w", err)
	}

	// No row flipped: distinguish an already-held seat from a missing one.
	existsQuery := `
		SELECT COUNT(*)
		FROM coach_seats cs
		JOIN coaches c ON c.id = cs.coach_id
		WHERE c.train_number = $1 AND c.coach_number = $2 AND cs.seat_number = $3`

	var count int
	if err := tx.Get(&count, existsQuery, trainNumber, coachNumber, seatNumber); err != nil {
		return "", fmt.Errorf("failed to check seat existence: %w", err)
	}
	if count == 0 {
		return "", ErrSeatNotFound
	}
	return "", ErrSeatUnavailable
}
