package guide

// Itinerary is the generated travel guide for one city.
type Itinerary struct {
	City  string `json:"city,omitempty"`
	Guide []Day  `json:"guide"`
}

// Day is one itinerary day with its scheduled activities.
type Day struct {
	Day       int        `json:"day"`
	Title     string     `json:"title"`
	Zone      string     `json:"zone"`
	Pace      string     `json:"pace"`
	DailyTips []string   `json:"daily_tips"`
	Schedule  []Activity `json:"schedule"`
}

// Activity is a single scheduled stop.
type Activity struct {
	Time            string   `json:"time"`
	Place           string   `json:"place"`
	Reason          string   `json:"reason"`
	ActivityType    string   `json:"activity_type"`
	PhysicalEffort  string   `json:"physical_effort"`
	DurationMinutes int      `json:"estimated_duration_minutes"`
	TravelerTips    []string `json:"traveler_tips"`
	AvoidIf         []string `json:"avoid_if"`
	BestTimeWindow  string   `json:"best_time_window"`
}
