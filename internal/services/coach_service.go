package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
)

// seatCountByType fixes the seat block generated for each coach class.
var seatCountByType = map[models.CoachType]int{
	models.CoachTypeAC:      10,
	models.CoachTypeSleeper: 10,
}

// CoachService provisions coaches and keeps the per-journey availability
// summaries in step when the physical coach set changes.
type CoachService struct {
	coachRepo    *database.CoachRepository
	trainRepo    *database.TrainRepository
	instanceRepo *database.TrainInstanceRepository
	logger       *logrus.Logger
}

// NewCoachService creates a new CoachService
func NewCoachService(
	coachRepo *database.CoachRepository,
	trainRepo *database.TrainRepository,
	instanceRepo *database.TrainInstanceRepository,
	logger *logrus.Logger,
) *CoachService {
	return &CoachService{
		coachRepo:    coachRepo,
		trainRepo:    trainRepo,
		instanceRepo: instanceRepo,
		logger:       logger,
	}
}

// AddCoach creates a coach with a generated seat block, then recomputes the
// coach's available-seat count into every future non-cancelled journey of the
// train.
func (s *CoachService) AddCoach(req *models.CreateCoachRequest) (*models.Coach, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	if _, err := s.trainRepo.GetByTrainNumber(req.TrainNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s not found", req.TrainNumber)
		}
		return nil, apperrors.Internal("failed to look up train", err)
	}

	coach := &models.Coach{
		TrainNumber: req.TrainNumber,
		CoachNumber: req.CoachNumber,
		CoachType:   req.CoachType,
	}
	if err := s.coachRepo.CreateCoachWithSeats(coach, seatCountByType[req.CoachType]); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("coach %s already exists", req.CoachNumber)
		}
		return nil, apperrors.Internal("failed to create coach", err)
	}

	available := 0
	for _, seat := range coach.Seats {
		if seat.IsAvailable {
			available++
		}
	}

	updated, err := s.instanceRepo.UpsertCoachSummary(
		coach.TrainNumber, coach.CoachNumber, coach.CoachType, available, time.Now())
	if err != nil {
		return nil, apperrors.Internal("failed to update journey availability", err)
	}

	s.logger.WithFields(logrus.Fields{
		"train_number":      coach.TrainNumber,
		"coach_number":      coach.CoachNumber,
		"coach_type":        coach.CoachType,
		"seats":             len(coach.Seats),
		"journeys_updated": updated,
	}).Info("Coach provisioned")

	return coach, nil
}

// GetCoachesForTrain returns the compact coach listing for a train
func (s *CoachService) GetCoachesForTrain(trainNumber string) ([]models.CoachListing, error) {
	if _, err := s.trainRepo.GetByTrainNumber(trainNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s not found", trainNumber)
		}
		return nil, apperrors.Internal("failed to look up train", err)
	}

	coaches, err := s.coachRepo.ListByTrainNumber(trainNumber)
	if err != nil {
		return nil, apperrors.Internal("failed to list coaches", err)
	}

	return coaches, nil
}

// GetCoachDetails returns one coach with its full seat ledger
func (s *CoachService) GetCoachDetails(coachNumber string) (*models.Coach, error) {
	coach, err := s.coachRepo.GetByCoachNumber(coachNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("coach %s not found", coachNumber)
		}
		return nil, apperrors.Internal("failed to look up coach", err)
	}

	return coach, nil
}
