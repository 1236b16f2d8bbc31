package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
)

// ChartService builds the reservation chart for one journey
type ChartService struct {
	trainRepo    *database.TrainRepository
	instanceRepo *database.TrainInstanceRepository
	coachRepo    *database.CoachRepository
}

// NewChartService creates a new ChartService
func NewChartService(
	trainRepo *database.TrainRepository,
	instanceRepo *database.TrainInstanceRepository,
	coachRepo *database.CoachRepository,
) *ChartService {
	return &ChartService{trainRepo: trainRepo, instanceRepo: instanceRepo, coachRepo: coachRepo}
}

// GetReservationChart joins the journey's availability summary with the
// authoritative coach seat ledgers.
func (s *ChartService) GetReservationChart(trainNumber, journeyDateStr string) (*models.ChartResponse, error) {
	journeyDate, err := time.Parse("2006-01-02", journeyDateStr)
	if err != nil {
		return nil, apperrors.Validation("journey_date must be in YYYY-MM-DD format")
	}

	train, err := s.trainRepo.GetByTrainNumber(trainNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s not found", trainNumber)
		}
		return nil, apperrors.Internal("failed to look up train", err)
	}

	instance, err := s.instanceRepo.GetByTrainAndDate(trainNumber, journeyDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s has no journey on %s", trainNumber, journeyDateStr)
		}
		return nil, apperrors.Internal("failed to look up journey", err)
	}

	coaches, err := s.coachRepo.ListByTrainNumberWithSeats(trainNumber)
	if err != nil {
		return nil, apperrors.Internal("failed to list coaches", err)
	}

	ledgerByCoach := make(map[string][]models.Seat, len(coaches))
	for _, coach := range coaches {
		ledgerByCoach[coach.CoachNumber] = coach.Seats
	}

	chart := &models.ChartResponse{
		TrainDetails: models.TrainSummary{
			TrainNumber:            train.TrainNumber,
			TrainName:              train.TrainName,
			SourceStationName:      train.SourceStationName,
			DestinationStationName: train.DestinationStationName,
			SourceDepartureTime:    train.SourceDepartureTime,
			JourneyDuration:        train.JourneyDuration,
		},
		JourneyDate: journeyDateStr,
		Status:      instance.Status,
	}
	for _, summary := range instance.AvailableCoaches {
		chart.Coaches = append(chart.Coaches, models.ChartCoach{
			CoachNumber:    summary.CoachNumber,
			CoachType:      summary.CoachType,
			AvailableSeats: summary.SeatsAvailable,
			SeatDetails:    ledgerByCoach[summary.CoachNumber],
		})
	}

	return chart, nil
}
