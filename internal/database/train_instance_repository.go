package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/railbook/train-booking-backend/internal/models"
)

// TrainInstanceRepository handles journey database operations, including the
// denormalized per-journey availability summary.
type TrainInstanceRepository struct {
	db *sqlx.DB
}

// NewTrainInstanceRepository creates a new TrainInstanceRepository
func NewTrainInstanceRepository(db *sqlx.DB) *TrainInstanceRepository {
	return &TrainInstanceRepository{db: db}
}

// Create inserts a journey and its initial availability summary rows in one
// transaction.
func (r *TrainInstanceRepository) Create(instance *models.TrainInstance) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	instanceQuery := `
		INSERT INTO train_instances (train_number, journey_date, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = tx.QueryRowx(instanceQuery, instance.TrainNumber, instance.JourneyDate, instance.Status).
		Scan(&instance.ID, &instance.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("train instance already exists for this date: %w", err)
		}
		return fmt.Errorf("failed to create train instance: %w", err)
	}

	coachQuery := `
		INSERT INTO train_instance_coaches (train_instance_id, coach_number, coach_type, seats_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for i := range instance.AvailableCoaches {
		instance.AvailableCoaches[i].TrainInstanceID = instance.ID
		err = tx.QueryRowx(coachQuery,
			instance.ID,
			instance.AvailableCoaches[i].CoachNumber,
			instance.AvailableCoaches[i].CoachType,
			instance.AvailableCoaches[i].SeatsAvailable,
		).Scan(&instance.AvailableCoaches[i].ID)
		if err != nil {
			return fmt.Errorf("failed to create coach summary for %s: %w",
				instance.AvailableCoaches[i].CoachNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByTrainAndDate returns the journey for (train number, journey date) with
// its availability summary.
func (r *TrainInstanceRepository) GetByTrainAndDate(trainNumber string, journeyDate time.Time) (*models.TrainInstance, error) {
	instance := &models.TrainInstance{}
	query := `
		SELECT id, train_number, journey_date, status, created_at
		FROM train_instances
		WHERE train_number = $1 AND journey_date = $2`

	if err := r.db.Get(instance, query, trainNumber, journeyDate); err != nil {
		return nil, err
	}

	if err := r.loadCoaches(instance); err != nil {
		return nil, err
	}

	return instance, nil
}

// ListUpcomingByTrain returns future non-cancelled journeys of a train,
// soonest first, with their availability summaries.
func (r *TrainInstanceRepository) ListUpcomingByTrain(trainNumber string, from time.Time) ([]models.TrainInstance, error) {
	query := `
		SELECT id, train_number, journey_date, status, created_at
		FROM train_instances
		WHERE train_number = $1 AND journey_date >= $2 AND status <> 'Cancelled'
		ORDER BY journey_date`

	var instances []models.TrainInstance
	if err := r.db.Select(&instances, query, trainNumber, from); err != nil {
		return nil, err
	}

	for i := range instances {
		if err := r.loadCoaches(&instances[i]); err != nil {
			return nil, err
		}
	}

	return instances, nil
}

func (r *TrainInstanceRepository) loadCoaches(instance *models.TrainInstance) error {
	query := `
		SELECT id, train_instance_id, coach_number, coach_type, seats_available
		FROM train_instance_coaches
		WHERE train_instance_id = $1
		ORDER BY coach_number`

	if err := r.db.Select(&instance.AvailableCoaches, query, instance.ID); err != nil {
		return fmt.Errorf("failed to load coach summaries: %w", err)
	}

	return nil
}

// UpsertCoachSummary writes the recomputed available-seat count for a coach
// into every future non-cancelled journey of the train. Called by coach
// provisioning, never by the reservation path.
func (r *TrainInstanceRepository) UpsertCoachSummary(trainNumber, coachNumber string, coachType models.CoachType, seatsAvailable int, from time.Time) (int, error) {
	query := `
		INSERT INTO train_instance_coaches (train_instance_id, coach_number, coach_type, seats_available)
		SELECT ti.id, $2, $3, $4
		FROM train_instances ti
		WHERE ti.train_number = $1 AND ti.journey_date >= $5 AND ti.status <> 'Cancelled'
		ON CONFLICT (train_instance_id, coach_number)
		DO UPDATE SET coach_type = EXCLUDED.coach_type,
		              seats_available = EXCLUDED.seats_available`

	result, err := r.db.Exec(query, trainNumber, coachNumber, coachType, seatsAvailable, from)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert coach summary: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// DecrementAvailability reduces the summary count for one coach of a journey
// by one, inside the caller's reservation transaction. The guard keeps the
// count from going negative when the summary has drifted; the caller treats
// zero affected rows as drift, not as a booking failure.
func (r *TrainInstanceRepository) DecrementAvailability(tx *sqlx.Tx, trainInstanceID, coachNumber string) (int, error) {
	query := `
		UPDATE train_instance_coaches
		SET seats_available = seats_available - 1
		WHERE train_instance_id = $1 AND coach_number = $2 AND seats_available > 0`

	result, err := tx.Exec(query, trainInstanceID, coachNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to decrement availability: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}
