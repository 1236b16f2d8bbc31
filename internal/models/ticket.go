package models

import (
	"time"
)

// PassengerGender represents the declared gender of a passenger
type PassengerGender string

const (
	PassengerGenderMale   PassengerGender = "Male"
	PassengerGenderFemale PassengerGender = "Female"
	PassengerGenderOther  PassengerGender = "Other"
)

// ValidPassengerGender reports whether g is a recognized gender value
func ValidPassengerGender(g PassengerGender) bool {
	return g == PassengerGenderMale || g == PassengerGenderFemale || g == PassengerGenderOther
}

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketStatusConfirmed TicketStatus = "Confirmed"
	TicketStatusCancelled TicketStatus = "Cancelled"
)

// Ticket is one passenger's seat on one journey. Created only inside a
// reservation transaction, immutable once confirmed.
type Ticket struct {
	ID                    string          `json:"id" db:"id"`
	PNRNumber             string          `json:"pnr_number" db:"pnr_number"`
	BookingID             string          `json:"-" db:"booking_id"`
	AccountID             string          `json:"-" db:"account_id"`
	TrainNumber           string          `json:"train_number" db:"train_number"`
	JourneyDate           time.Time       `json:"journey_date" db:"journey_date"`
	PassengerName         string          `json:"passenger_name" db:"passenger_name"`
	PassengerGender       PassengerGender `json:"passenger_gender" db:"passenger_gender"`
	CoachNumber           string          `json:"coach_number" db:"coach_number"`
	CoachType             CoachType       `json:"coach_type" db:"coach_type"`
	SeatNumber            int             `json:"seat_number" db:"seat_number"`
	TicketFare            float64         `json:"ticket_fare" db:"ticket_fare"`
	BookingStatus         TicketStatus    `json:"booking_status" db:"booking_status"`
	CancellationTimestamp *time.Time      `json:"cancellation_timestamp,omitempty" db:"cancellation_timestamp"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
}

// TicketWithTrain is a ticket joined with its train summary, returned by the
// PNR lookup.
type TicketWithTrain struct {
	Ticket
	TrainName              string `json:"train_name" db:"train_name"`
	SourceStationName      string `json:"source_station_name" db:"source_station_name"`
	DestinationStationName string `json:"destination_station_name" db:"destination_station_name"`
	SourceDepartureTime    string `json:"source_departure_time" db:"source_departure_time"`
	JourneyDuration        string `json:"journey_duration" db:"journey_duration"`
}
