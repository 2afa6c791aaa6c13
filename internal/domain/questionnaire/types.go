package questionnaire

import "time"

// Budget tiers accepted by the guide service.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// Travel types accepted by the guide service.
const (
	TravelSolo   = "solo"
	TravelCouple = "couple"
	TravelFamily = "family"
	TravelGroup  = "group"
)

// Form is the raw questionnaire state collected from the user. It is the
// single source of truth for the wizard; nothing here is in wire format
// except TripTypes, which already use the backend tag vocabulary.
type Form struct {
	Destination       string
	DateFrom          time.Time
	DateTo            time.Time
	SelectedInterests []string
	TripTypes         []string
	// HasBudget is tri-state: nil (unanswered), true (numeric Budget is
	// authoritative), false (BudgetLevel is authoritative).
	HasBudget   *bool
	Budget      int
	BudgetLevel string
	Dislikes    string
	TravelType  string
}

// GuideRequest is the wire shape sent to the guide generation endpoint.
// Derived from a Form via ToGuideRequest, never mutated directly.
type GuideRequest struct {
	City       string   `json:"city"`
	Days       int      `json:"days"`
	Interests  []string `json:"interests"`
	Budget     string   `json:"budget"`
	TravelType string   `json:"travel_type"`
	Dislikes   []string `json:"dislikes"`
}

// Result reports validation outcome. Errors is keyed by field name with a
// single message per field.
type Result struct {
	Valid  bool
	Errors map[string]string
}
