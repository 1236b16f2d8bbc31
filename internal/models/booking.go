package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
	PaymentStatusPending PaymentStatus = "Pending"
)

// BookingStatus represents the overall state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed          BookingStatus = "Confirmed"
	BookingStatusPartiallyCancelled BookingStatus = "Partially_Cancelled"
	BookingStatusCancelled          BookingStatus = "Cancelled"
)

// Booking groups the tickets created by one reservation transaction. The
// ticket set is fixed at creation and total_amount equals the sum of the
// tickets' fares.
type Booking struct {
	ID               string        `json:"id" db:"id"`
	AccountID        string        `json:"account_id" db:"account_id"`
	TotalAmount      float64       `json:"total_amount" db:"total_amount"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	Status           BookingStatus `json:"status" db:"status"`
	BookingTimestamp time.Time     `json:"booking_timestamp" db:"booking_timestamp"`
}

// PassengerSpec is one passenger line of a booking request
type PassengerSpec struct {
	PassengerName   string          `json:"passenger_name" binding:"required"`
	PassengerGender PassengerGender `json:"passenger_gender" binding:"required"`
	CoachNumber     string          `json:"coach_number" binding:"required"`
	CoachType       CoachType       `json:"coach_type" binding:"required"`
	SeatNumber      int             `json:"seat_number" binding:"required,gte=1"`
}

// BookTicketsRequest is the inbound reservation request
type BookTicketsRequest struct {
	TrainNumber string          `json:"train_number" binding:"required"`
	JourneyDate string          `json:"journey_date" binding:"required"`
	Passengers  []PassengerSpec `json:"passengers" binding:"required"`
}

// Validate rejects malformed requests before any claim attempt is made
func (r *BookTicketsRequest) Validate() error {
	if strings.TrimSpace(r.TrainNumber) == "" {
		return fmt.Errorf("train_number is required")
	}
	if _, err := time.Parse("2006-01-02", r.JourneyDate); err != nil {
		return fmt.Errorf("journey_date must be in YYYY-MM-DD format")
	}
	if len(r.Passengers) == 0 {
		return fmt.Errorf("at least one passenger is required")
	}
	for i, p := range r.Passengers {
		if strings.TrimSpace(p.PassengerName) == "" {
			return fmt.Errorf("passenger %d: passenger_name is required", i+1)
		}
		if !ValidPassengerGender(p.PassengerGender) {
			return fmt.Errorf("passenger %d: passenger_gender must be Male, Female or Other", i+1)
		}
		if strings.TrimSpace(p.CoachNumber) == "" {
			return fmt.Errorf("passenger %d: coach_number is required", i+1)
		}
		if !ValidCoachType(p.CoachType) {
			return fmt.Errorf("passenger %d: coach_type must be AC or Sleeper", i+1)
		}
		if p.SeatNumber < 1 {
			return fmt.Errorf("passenger %d: seat_number must be positive", i+1)
		}
	}
	return nil
}

// JourneyDateValue returns the parsed journey date. Validate must succeed first.
func (r *BookTicketsRequest) JourneyDateValue() time.Time {
	d, _ := time.Parse("2006-01-02", r.JourneyDate)
	return d
}

// BookingResult is returned on a successful reservation
type BookingResult struct {
	Booking *Booking `json:"booking"`
	Tickets []Ticket `json:"tickets"`
}

// BookingWithTickets is one entry of an account's booking history
type BookingWithTickets struct {
	Booking Booking           `json:"booking"`
	Tickets []TicketWithTrain `json:"tickets"`
}
