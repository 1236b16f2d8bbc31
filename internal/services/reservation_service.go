package services

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/config"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/pkg/pnr"
)

// ReservationService coordinates one booking request: it claims every
// requested seat, creates the tickets and the grouping booking record, and
// keeps the journey availability summary in step, all inside a single
// database transaction, so a failed request leaves nothing behind.
type ReservationService struct {
	db           *sqlx.DB
	trainRepo    *database.TrainRepository
	instanceRepo *database.TrainInstanceRepository
	coachRepo    *database.CoachRepository
	bookingRepo  *database.BookingRepository
	ticketRepo   *database.TicketRepository
	cfg          config.BookingConfig
	logger       *logrus.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	db *sqlx.DB,
	trainRepo *database.TrainRepository,
	instanceRepo *database.TrainInstanceRepository,
	coachRepo *database.CoachRepository,
	bookingRepo *database.BookingRepository,
	ticketRepo *database.TicketRepository,
	cfg config.BookingConfig,
	logger *logrus.Logger,
) *ReservationService {
	return &ReservationService{
		db:           db,
		trainRepo:    trainRepo,
		instanceRepo: instanceRepo,
		coachRepo:    coachRepo,
		bookingRepo:  bookingRepo,
		ticketRepo:   ticketRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// BookTickets processes one reservation request for an account. Either every
// passenger gets a ticket or the whole request fails: the first claim that
// cannot be satisfied rolls back all prior claims in this request. Duplicate
// (coach, seat) pairs within one request fail on the second claim, since the
// first already flipped the seat inside the same transaction.
func (s *ReservationService) BookTickets(accountID string, req *models.BookTicketsRequest) (*models.BookingResult, error) {
	// Validation and lookups happen before any mutation.
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}
	if len(req.Passengers) > s.cfg.MaxPassengersPerBooking {
		return nil, apperrors.Validation("a booking may hold at most %d passengers", s.cfg.MaxPassengersPerBooking)
	}

	train, err := s.trainRepo.GetByTrainNumber(req.TrainNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s not found", req.TrainNumber)
		}
		return nil, apperrors.Internal("failed to look up train", err)
	}

	journeyDate := req.JourneyDateValue()
	instance, err := s.instanceRepo.GetByTrainAndDate(req.TrainNumber, journeyDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("train %s has no journey on %s", req.TrainNumber, req.JourneyDate)
		}
		return nil, apperrors.Internal("failed to look up journey", err)
	}
	if instance.Status != models.TrainInstanceStatusScheduled {
		return nil, apperrors.Validation("journey on %s is not open for booking (status %s)", req.JourneyDate, instance.Status)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	tickets := make([]models.Ticket, 0, len(req.Passengers))
	var totalAmount float64

	for _, passenger := range req.Passengers {
		coachType, err := s.coachRepo.ClaimSeat(tx, req.TrainNumber, passenger.CoachNumber, passenger.SeatNumber)
		if err != nil {
			switch {
			case errors.Is(err, database.ErrSeatNotFound):
				return nil, apperrors.NotFound("seat %d in coach %s does not exist on train %s",
					passenger.SeatNumber, passenger.CoachNumber, req.TrainNumber)
			case errors.Is(err, database.ErrSeatUnavailable):
				return nil, apperrors.SeatUnavailable("seat %d in coach %s is not available",
					passenger.SeatNumber, passenger.CoachNumber)
			default:
				return nil, apperrors.Internal("failed to claim seat", err)
			}
		}

		// Fare comes from the authoritative coach type, not the declared one.
		if passenger.CoachType != coachType {
			s.logger.WithFields(logrus.Fields{
				"train_number": req.TrainNumber,
				"coach_number": passenger.CoachNumber,
				"declared":     passenger.CoachType,
				"actual":       coachType,
			}).Warn("Declared coach type does not match coach record, using actual")
		}
		fare, err := train.FareForCoachType(coachType)
		if err != nil {
			return nil, apperrors.Internal("failed to compute fare", err)
		}

		affected, err := s.instanceRepo.DecrementAvailability(tx, instance.ID, passenger.CoachNumber)
		if err != nil {
			return nil, apperrors.Internal("failed to update availability summary", err)
		}
		if affected == 0 {
			// Summary drifted below the ledger; the ledger stays authoritative.
			s.logger.WithFields(logrus.Fields{
				"train_instance_id": instance.ID,
				"coach_number":      passenger.CoachNumber,
			}).Warn("Availability summary already at zero while seat claim succeeded")
		}

		totalAmount += fare
		tickets = append(tickets, models.Ticket{
			PNRNumber:       pnr.Generate(),
			AccountID:       accountID,
			TrainNumber:     req.TrainNumber,
			JourneyDate:     journeyDate,
			PassengerName:   passenger.PassengerName,
			PassengerGender: passenger.PassengerGender,
			CoachNumber:     passenger.CoachNumber,
			CoachType:       coachType,
			SeatNumber:      passenger.SeatNumber,
			TicketFare:      fare,
			BookingStatus:   models.TicketStatusConfirmed,
		})
	}

	booking := &models.Booking{
		AccountID:     accountID,
		TotalAmount:   totalAmount,
		PaymentStatus: models.PaymentStatusPaid,
		Status:        models.BookingStatusConfirmed,
	}
	if err := s.bookingRepo.Insert(tx, booking); err != nil {
		return nil, apperrors.Internal("failed to create booking", err)
	}

	for i := range tickets {
		tickets[i].BookingID = booking.ID
		if err := s.ticketRepo.Insert(tx, &tickets[i]); err != nil {
			if database.IsUniqueViolation(err) {
				return nil, apperrors.Conflict("booking reference collision, please retry")
			}
			return nil, apperrors.Internal("failed to create ticket", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("failed to commit reservation", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":   booking.ID,
		"account_id":   accountID,
		"train_number": req.TrainNumber,
		"journey_date": req.JourneyDate,
		"tickets":      len(tickets),
		"total_amount": totalAmount,
	}).Info("Reservation confirmed")

	return &models.BookingResult{Booking: booking, Tickets: tickets}, nil
}
