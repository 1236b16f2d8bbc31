package models

import (
	"fmt"
	"strings"
	"time"
)

// CoachType represents the class of a coach
type CoachType string

const (
	CoachTypeAC      CoachType = "AC"
	CoachTypeSleeper CoachType = "Sleeper"
)

// ValidCoachType reports whether t is a recognized coach type
func ValidCoachType(t CoachType) bool {
	return t == CoachTypeAC || t == CoachTypeSleeper
}

// Coach is the authoritative seat ledger for one physical coach. A coach
// belongs to exactly one train, its seat count is fixed at creation, and
// seat numbers are unique within it.
type Coach struct {
	ID          string    `json:"id" db:"id"`
	TrainNumber string    `json:"train_number" db:"train_number"`
	CoachNumber string    `json:"coach_number" db:"coach_number"`
	CoachType   CoachType `json:"coach_type" db:"coach_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Seats       []Seat    `json:"seats,omitempty"`
}

// Seat is one physical seat and its availability flag, the source of truth
// for whether the seat is currently held.
type Seat struct {
	ID          string `json:"id" db:"id"`
	CoachID     string `json:"-" db:"coach_id"`
	SeatNumber  int    `json:"seat_number" db:"seat_number"`
	IsAvailable bool   `json:"is_available" db:"is_available"`
}

// CoachListing is the compact per-train coach view
type CoachListing struct {
	CoachNumber string    `json:"coach_number" db:"coach_number"`
	CoachType   CoachType `json:"coach_type" db:"coach_type"`
}

// CreateCoachRequest is the payload for provisioning a coach
type CreateCoachRequest struct {
	TrainNumber string    `json:"train_number" binding:"required"`
	CoachNumber string    `json:"coach_number" binding:"required"`
	CoachType   CoachType `json:"coach_type" binding:"required"`
}

// Validate checks the coach payload beyond binding tags
func (r *CreateCoachRequest) Validate() error {
	if strings.TrimSpace(r.CoachNumber) == "" {
		return fmt.Errorf("coach_number is required")
	}
	if !ValidCoachType(r.CoachType) {
		return fmt.Errorf("coach_type must be AC or Sleeper")
	}
	return nil
}
