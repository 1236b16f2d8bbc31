package services

import (
	"database/sql"
	"errors"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
)

// TrainInstanceService opens journeys for booking
type TrainInstanceService struct {
	instanceRepo *database.TrainInstanceRepository
	trainRepo    *database.TrainRepository
	coachRepo    *database.CoachRepository
}

// NewTrainInstanceService creates a new TrainInstanceService
func NewTrainInstanceService(
	instanceRepo *database.TrainInstanceRepository,
	trainRepo *database.TrainRepository,
	coachRepo *database.CoachRepository,
) *TrainInstanceService {
	return &TrainInstanceService{
		instanceRepo: instanceRepo,
		trainRepo:    trainRepo,
		coachRepo:    coachRepo,
	}
}

// CreateTrainInstance creates the journey for (train number, date), seeding
// its availability summary from the coach seat ledgers.
func (s *TrainInstanceService) CreateTrainInstance(req *models.CreateTrainInstanceRequest) (*models.TrainInstance, error) {
	journeyDate, err := req.Validate()
	if err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	if _, err := s.trainRepo.GetByTrainNumber(req.TrainNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s not found", req.TrainNumber)
		}
		return nil, apperrors.Internal("failed to look up train", err)
	}

	coaches, err := s.coachRepo.ListByTrainNumberWithSeats(req.TrainNumber)
	if err != nil {
		return nil, apperrors.Internal("failed to list coaches", err)
	}

	status := req.Status
	if status == "" {
		status = models.TrainInstanceStatusScheduled
	}

	instance := &models.TrainInstance{
		TrainNumber: req.TrainNumber,
		JourneyDate: journeyDate,
		Status:      status,
	}
	for _, coach := range coaches {
		available := 0
		for _, seat := range coach.Seats {
			if seat.IsAvailable {
				available++
			}
		}
		instance.AvailableCoaches = append(instance.AvailableCoaches, models.InstanceCoach{
			CoachNumber:    coach.CoachNumber,
			CoachType:      coach.CoachType,
			SeatsAvailable: available,
		})
	}

	if err := s.instanceRepo.Create(instance); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("train instance already exists for %s", req.JourneyDate)
		}
		return nil, apperrors.Internal("failed to create train instance", err)
	}

	return instance, nil
}
