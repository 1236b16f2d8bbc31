package models

import (
	"fmt"
	"strings"
	"time"
)

// Train represents a static catalog entry. Immutable after creation; the train
// number is the stable identifier used everywhere instead of the internal id.
type Train struct {
	ID                     string    `json:"id" db:"id"`
	TrainNumber            string    `json:"train_number" db:"train_number"`
	TrainName              string    `json:"train_name" db:"train_name"`
	SourceStationName      string    `json:"source_station_name" db:"source_station_name"`
	DestinationStationName string    `json:"destination_station_name" db:"destination_station_name"`
	SourceDepartureTime    string    `json:"source_departure_time" db:"source_departure_time"`
	JourneyDuration        string    `json:"journey_duration" db:"journey_duration"`
	ACTicketFare           float64   `json:"ac_ticket_fare" db:"ac_ticket_fare"`
	SleeperTicketFare      float64   `json:"sleeper_ticket_fare" db:"sleeper_ticket_fare"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
}

// FareForCoachType returns the fare matching the coach type
func (t *Train) FareForCoachType(coachType CoachType) (float64, error) {
	switch coachType {
	case CoachTypeAC:
		return t.ACTicketFare, nil
	case CoachTypeSleeper:
		return t.SleeperTicketFare, nil
	default:
		return 0, fmt.Errorf("unknown coach type: %s", coachType)
	}
}

// CreateTrainRequest is the payload for adding a train
type CreateTrainRequest struct {
	TrainNumber            string  `json:"train_number" binding:"required"`
	TrainName              string  `json:"train_name" binding:"required"`
	SourceStationName      string  `json:"source_station_name" binding:"required"`
	DestinationStationName string  `json:"destination_station_name" binding:"required"`
	SourceDepartureTime    string  `json:"source_departure_time" binding:"required"`
	JourneyDuration        string  `json:"journey_duration" binding:"required"`
	ACTicketFare           float64 `json:"ac_ticket_fare" binding:"required,gte=0"`
	SleeperTicketFare      float64 `json:"sleeper_ticket_fare" binding:"required,gte=0"`
}

// Validate checks the train payload beyond binding tags
func (r *CreateTrainRequest) Validate() error {
	if strings.TrimSpace(r.TrainNumber) == "" {
		return fmt.Errorf("train_number is required")
	}
	if strings.EqualFold(r.SourceStationName, r.DestinationStationName) {
		return fmt.Errorf("source and destination stations must differ")
	}
	return nil
}

// TrainFares groups the per-class fares for responses
type TrainFares struct {
	AC      float64 `json:"AC"`
	Sleeper float64 `json:"Sleeper"`
}

// TrainSummary is the joined train view attached to tickets and charts
type TrainSummary struct {
	TrainNumber            string `json:"train_number" db:"train_number"`
	TrainName              string `json:"train_name" db:"train_name"`
	SourceStationName      string `json:"source_station_name" db:"source_station_name"`
	DestinationStationName string `json:"destination_station_name" db:"destination_station_name"`
	SourceDepartureTime    string `json:"source_departure_time" db:"source_departure_time"`
	JourneyDuration        string `json:"journey_duration" db:"journey_duration"`
}

// TrainInfoResponse is the train detail view with upcoming journeys
type TrainInfoResponse struct {
	TrainDetails      TrainDetails     `json:"train_details"`
	AvailableJourneys []JourneySummary `json:"available_journeys"`
}

// TrainDetails is the catalog portion of TrainInfoResponse
type TrainDetails struct {
	TrainNumber            string     `json:"train_number"`
	TrainName              string     `json:"train_name"`
	SourceStationName      string     `json:"source_station_name"`
	DestinationStationName string     `json:"destination_station_name"`
	SourceDepartureTime    string     `json:"source_departure_time"`
	JourneyDuration        string     `json:"journey_duration"`
	Fares                  TrainFares `json:"fares"`
}

// ActiveTrain is a train with journeys open for booking
type ActiveTrain struct {
	TrainNumber            string          `json:"train_number"`
	TrainName              string          `json:"train_name"`
	SourceStationName      string          `json:"source_station_name"`
	DestinationStationName string          `json:"destination_station_name"`
	SourceDepartureTime    string          `json:"source_departure_time"`
	JourneyDuration        string          `json:"journey_duration"`
	Fares                  TrainFares      `json:"fares"`
	AvailableDates         []AvailableDate `json:"available_dates"`
}

// AvailableDate pairs a journey date with its total remaining seats
type AvailableDate struct {
	Date           time.Time `json:"date"`
	AvailableSeats int       `json:"available_seats"`
}

// City is a distinct source or destination station
type City struct {
	CityName string `json:"city_name" db:"city_name"`
}
