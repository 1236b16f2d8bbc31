package models

import (
	"fmt"
	"time"
)

// TrainInstanceStatus represents the operational status of a journey
type TrainInstanceStatus string

const (
	TrainInstanceStatusScheduled TrainInstanceStatus = "Scheduled"
	TrainInstanceStatusRunning   TrainInstanceStatus = "Running"
	TrainInstanceStatusCancelled TrainInstanceStatus = "Cancelled"
	TrainInstanceStatusCompleted TrainInstanceStatus = "Completed"
)

// ValidTrainInstanceStatus reports whether s is a recognized journey status
func ValidTrainInstanceStatus(s TrainInstanceStatus) bool {
	switch s {
	case TrainInstanceStatusScheduled, TrainInstanceStatusRunning,
		TrainInstanceStatusCancelled, TrainInstanceStatusCompleted:
		return true
	}
	return false
}

// TrainInstance is one journey of a train on a specific date. It carries the
// denormalized availability summary used for browsing; the coach seat flags
// remain authoritative.
type TrainInstance struct {
	ID               string              `json:"id" db:"id"`
	TrainNumber      string              `json:"train_number" db:"train_number"`
	JourneyDate      time.Time           `json:"journey_date" db:"journey_date"`
	Status           TrainInstanceStatus `json:"status" db:"status"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
	AvailableCoaches []InstanceCoach     `json:"available_coaches,omitempty"`
}

// InstanceCoach is one row of the per-journey availability summary. The
// seats_available count must never exceed the coach's physical seat count.
type InstanceCoach struct {
	ID              string    `json:"-" db:"id"`
	TrainInstanceID string    `json:"-" db:"train_instance_id"`
	CoachNumber     string    `json:"coach_number" db:"coach_number"`
	CoachType       CoachType `json:"coach_type" db:"coach_type"`
	SeatsAvailable  int       `json:"seats_available" db:"seats_available"`
}

// JourneySummary is the browsing view of one journey
type JourneySummary struct {
	InstanceID       string              `json:"instance_id"`
	JourneyDate      time.Time           `json:"journey_date"`
	Status           TrainInstanceStatus `json:"status"`
	AvailableCoaches []InstanceCoach     `json:"available_coaches"`
}

// CreateTrainInstanceRequest is the payload for opening a journey for booking
type CreateTrainInstanceRequest struct {
	TrainNumber string              `json:"train_number" binding:"required"`
	JourneyDate string              `json:"journey_date" binding:"required"`
	Status      TrainInstanceStatus `json:"status"`
}

// Validate checks the journey payload and parses the date
func (r *CreateTrainInstanceRequest) Validate() (time.Time, error) {
	journeyDate, err := time.Parse("2006-01-02", r.JourneyDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("journey_date must be in YYYY-MM-DD format")
	}
	if r.Status != "" && !ValidTrainInstanceStatus(r.Status) {
		return time.Time{}, fmt.Errorf("invalid status: %s", r.Status)
	}
	return journeyDate, nil
}
