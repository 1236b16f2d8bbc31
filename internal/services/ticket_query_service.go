package services

import (
	"database/sql"
	"errors"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
)

// TicketQueryService serves read-only booking lookups: ticket by PNR and an
// account's booking history.
type TicketQueryService struct {
	ticketRepo  *database.TicketRepository
	bookingRepo *database.BookingRepository
}

// NewTicketQueryService creates a new TicketQueryService
func NewTicketQueryService(ticketRepo *database.TicketRepository, bookingRepo *database.BookingRepository) *TicketQueryService {
	return &TicketQueryService{ticketRepo: ticketRepo, bookingRepo: bookingRepo}
}

// GetTicketByPNR returns the ticket with its joined train summary
func (s *TicketQueryService) GetTicketByPNR(pnrNumber string) (*models.TicketWithTrain, error) {
	ticket, err := s.ticketRepo.GetByPNR(pnrNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("no ticket found for PNR %s", pnrNumber)
		}
		return nil, apperrors.Internal("failed to look up ticket", err)
	}

	return ticket, nil
}

// GetAccountBookings returns an account's bookings with their tickets and
// train summaries, most recent first.
func (s *TicketQueryService) GetAccountBookings(accountID string) ([]models.BookingWithTickets, error) {
	bookings, err := s.bookingRepo.ListByAccount(accountID)
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}

	if len(bookings) == 0 {
		return []models.BookingWithTickets{}, nil
	}

	bookingIDs := make([]string, len(bookings))
	for i, b := range bookings {
		bookingIDs[i] = b.ID
	}

	tickets, err := s.ticketRepo.ListByBookingIDs(bookingIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to list tickets", err)
	}

	byBooking := make(map[string][]models.TicketWithTrain, len(bookings))
	for _, t := range tickets {
		byBooking[t.BookingID] = append(byBooking[t.BookingID], t)
	}

	history := make([]models.BookingWithTickets, len(bookings))
	for i, b := range bookings {
		history[i] = models.BookingWithTickets{
			Booking: b,
			Tickets: byBooking[b.ID],
		}
	}

	return history, nil
}
