package models

// ChartResponse is the reservation chart for one journey: the train summary,
// the journey status, and every coach's availability summary alongside its
// authoritative seat ledger.
type ChartResponse struct {
	TrainDetails TrainSummary        `json:"train_details"`
	JourneyDate  string              `json:"journey_date"`
	Status       TrainInstanceStatus `json:"status"`
	Coaches      []ChartCoach        `json:"coaches"`
}

// ChartCoach pairs a coach's summary count with its per-seat flags
type ChartCoach struct {
	CoachNumber    string    `json:"coach_number"`
	CoachType      CoachType `json:"coach_type"`
	AvailableSeats int       `json:"available_seats"`
	SeatDetails    []Seat    `json:"seat_details"`
}
