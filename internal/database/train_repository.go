package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/railbook/train-booking-backend/internal/models"
)

// TrainRepository handles train catalog database operations
type TrainRepository struct {
	db *sqlx.DB
}

// NewTrainRepository creates a new TrainRepository
func NewTrainRepository(db *sqlx.DB) *TrainRepository {
	return &TrainRepository{db: db}
}

const trainColumns = `id, train_number, train_name, source_station_name, destination_station_name,
	   source_departure_time, journey_duration, ac_ticket_fare, sleeper_ticket_fare, created_at`

// Create inserts a new train catalog entry
func (r *TrainRepository) Create(train *models.Train) error {
	query := `
		INSERT INTO trains (
			train_number, train_name, source_station_name, destination_station_name,
			source_departure_time, journey_duration, ac_ticket_fare, sleeper_ticket_fare
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowx(query,
		train.TrainNumber, train.TrainName, train.SourceStationName, train.DestinationStationName,
		train.SourceDepartureTime, train.JourneyDuration, train.ACTicketFare, train.SleeperTicketFare,
	).Scan(&train.ID, &train.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("train %s already exists: %w", train.TrainNumber, err)
		}
		return fmt.Errorf("failed to create train: %w", err)
	}

	return nil
}

// GetByTrainNumber returns a train by its stable public identifier
func (r *TrainRepository) GetByTrainNumber(trainNumber string) (*models.Train, error) {
	train := &models.Train{}
	query := `SELECT ` + trainColumns + ` FROM trains WHERE train_number = $1`

	if err := r.db.Get(train, query, trainNumber); err != nil {
		return nil, err
	}

	return train, nil
}

// List returns all trains ordered by train number
func (r *TrainRepository) List() ([]models.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains ORDER BY train_number`

	var trains []models.Train
	if err := r.db.Select(&trains, query); err != nil {
		return nil, err
	}

	return trains, nil
}

// Search returns trains between a source and destination station
func (r *TrainRepository) Search(sourceStationName, destinationStationName string) ([]models.Train, error) {
	query := `
		SELECT ` + trainColumns + `
		FROM trains
		WHERE source_station_name = $1 AND destination_station_name = $2
		ORDER BY source_departure_time`

	var trains []models.Train
	if err := r.db.Select(&trains, query, sourceStationName, destinationStationName); err != nil {
		return nil, err
	}

	return trains, nil
}

// ListCities returns every distinct source or destination station name
func (r *TrainRepository) ListCities() ([]models.City, error) {
	query := `
		SELECT DISTINCT city_name FROM (
			SELECT source_station_name AS city_name FROM trains
			UNION
			SELECT destination_station_name AS city_name FROM trains
		) cities
		ORDER BY city_name`

	var cities []models.City
	if err := r.db.Select(&cities, query); err != nil {
		return nil, err
	}

	return cities, nil
}

// activeTrainRow is the flattened result of the active-trains aggregate query
type activeTrainRow struct {
	models.Train
	JourneyDate    time.Time `db:"journey_date"`
	AvailableSeats int       `db:"available_seats"`
}

// ListActiveTrains returns trains that have scheduled journeys within the
// booking window, with the summed remaining seats per journey date.
func (r *TrainRepository) ListActiveTrains(from time.Time, windowDays int) ([]models.ActiveTrain, error) {
	to := from.AddDate(0, 0, windowDays)
	query := `
		SELECT ` + prefixedTrainColumns("t") + `,
			   ti.journey_date,
			   COALESCE(SUM(tic.seats_available), 0) AS available_seats
		FROM trains t
		JOIN train_instances ti ON ti.train_number = t.train_number
		LEFT JOIN train_instance_coaches tic ON tic.train_instance_id = ti.id
		WHERE ti.status = 'Scheduled'
		  AND ti.journey_date >= $1
		  AND ti.journey_date <= $2
		GROUP BY ` + prefixedTrainColumns("t") + `, ti.journey_date
		ORDER BY t.train_number, ti.journey_date`

	var rows []activeTrainRow
	if err := r.db.Select(&rows, query, from, to); err != nil {
		return nil, err
	}

	// Fold journey rows into one entry per train, preserving query order.
	var trains []models.ActiveTrain
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.TrainNumber]
		if !ok {
			trains = append(trains, models.ActiveTrain{
				TrainNumber:            row.TrainNumber,
				TrainName:              row.TrainName,
				SourceStationName:      row.SourceStationName,
				DestinationStationName: row.DestinationStationName,
				SourceDepartureTime:    row.SourceDepartureTime,
				JourneyDuration:        row.JourneyDuration,
				Fares: models.TrainFares{
					AC:      row.ACTicketFare,
					Sleeper: row.SleeperTicketFare,
				},
			})
			i = len(trains) - 1
			index[row.TrainNumber] = i
		}
		trains[i].AvailableDates = append(trains[i].AvailableDates, models.AvailableDate{
			Date:           row.JourneyDate,
			AvailableSeats: row.AvailableSeats,
		})
	}

	return trains, nil
}

func prefixedTrainColumns(alias string) string {
	return alias + `.id, ` + alias + `.train_number, ` + alias + `.train_name, ` +
		alias + `.source_station_name, ` + alias + `.destination_station_name, ` +
		alias + `.source_departure_time, ` + alias + `.journey_duration, ` +
		alias + `.ac_ticket_fare, ` + alias + `.sleeper_ticket_fare, ` + alias + `.created_at`
}
