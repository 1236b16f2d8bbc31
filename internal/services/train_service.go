package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/config"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
)

// TrainService serves the train catalog: listings, search, and the per-train
// journey availability view.
type TrainService struct {
	trainRepo    *database.TrainRepository
	instanceRepo *database.TrainInstanceRepository
	cfg          config.BookingConfig
}

// NewTrainService creates a new TrainService
func NewTrainService(trainRepo *database.TrainRepository, instanceRepo *database.TrainInstanceRepository, cfg config.BookingConfig) *TrainService {
	return &TrainService{trainRepo: trainRepo, instanceRepo: instanceRepo, cfg: cfg}
}

// AddTrain creates a catalog entry
func (s *TrainService) AddTrain(req *models.CreateTrainRequest) (*models.Train, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	train := &models.Train{
		TrainNumber:            req.TrainNumber,
		TrainName:              req.TrainName,
		SourceStationName:      req.SourceStationName,
		DestinationStationName: req.DestinationStationName,
		SourceDepartureTime:    req.SourceDepartureTime,
		JourneyDuration:        req.JourneyDuration,
		ACTicketFare:           req.ACTicketFare,
		SleeperTicketFare:      req.SleeperTicketFare,
	}
	if err := s.trainRepo.Create(train); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("train %s already exists", req.TrainNumber)
		}
		return nil, apperrors.Internal("failed to create train", err)
	}

	return train, nil
}

// ListTrains returns the whole catalog
func (s *TrainService) ListTrains() ([]models.Train, error) {
	trains, err := s.trainRepo.List()
	if err != nil {
		return nil, apperrors.Internal("failed to list trains", err)
	}
	return trains, nil
}

// GetTrainByNumber returns one catalog entry
func (s *TrainService) GetTrainByNumber(trainNumber string) (*models.Train, error) {
	train, err := s.trainRepo.GetByTrainNumber(trainNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s not found", trainNumber)
		}
		return nil, apperrors.Internal("failed to look up train", err)
	}
	return train, nil
}

// SearchTrains returns trains between two stations
func (s *TrainService) SearchTrains(source, destination string) ([]models.Train, error) {
	if source == "" || destination == "" {
		return nil, apperrors.Validation("source and destination are required")
	}

	trains, err := s.trainRepo.Search(source, destination)
	if err != nil {
		return nil, apperrors.Internal("failed to search trains", err)
	}
	return trains, nil
}

// GetTrainInfo returns a train's details with its upcoming non-cancelled
// journeys and their availability summaries.
func (s *TrainService) GetTrainInfo(trainNumber string) (*models.TrainInfoResponse, error) {
	train, err := s.GetTrainByNumber(trainNumber)
	if err != nil {
		return nil, err
	}

	instances, err := s.instanceRepo.ListUpcomingByTrain(trainNumber, startOfToday())
	if err != nil {
		return nil, apperrors.Internal("failed to list journeys", err)
	}

	journeys := make([]models.JourneySummary, len(instances))
	for i, instance := range instances {
		journeys[i] = models.JourneySummary{
			InstanceID:       instance.ID,
			JourneyDate:      instance.JourneyDate,
			Status:           instance.Status,
			AvailableCoaches: instance.AvailableCoaches,
		}
	}

	return &models.TrainInfoResponse{
		TrainDetails: models.TrainDetails{
			TrainNumber:            train.TrainNumber,
			TrainName:              train.TrainName,
			SourceStationName:      train.SourceStationName,
			DestinationStationName: train.DestinationStationName,
			SourceDepartureTime:    train.SourceDepartureTime,
			JourneyDuration:        train.JourneyDuration,
			Fares: models.TrainFares{
				AC:      train.ACTicketFare,
				Sleeper: train.SleeperTicketFare,
			},
		},
		AvailableJourneys: journeys,
	}, nil
}

// ListActiveTrains returns trains with scheduled journeys inside the booking
// window.
func (s *TrainService) ListActiveTrains() ([]models.ActiveTrain, error) {
	trains, err := s.trainRepo.ListActiveTrains(startOfToday(), s.cfg.ActiveWindowDays)
	if err != nil {
		return nil, apperrors.Internal("failed to list active trains", err)
	}
	return trains, nil
}

// ListCities returns every distinct source or destination station
func (s *TrainService) ListCities() ([]models.City, error) {
	cities, err := s.trainRepo.ListCities()
	if err != nil {
		return nil, apperrors.Internal("failed to list cities", err)
	}
	return cities, nil
}

// startOfToday truncates now to the journey-date granularity
func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
