package questionnaire

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// maxInterests is the guide service cap on interest tags per request.
const maxInterests = 8

var dislikesSeparator = regexp.MustCompile(`[,;\n]+`)

// CalculateDays returns the inclusive day count of a trip: both boundary
// calendar days are counted, so from == to yields 1. Returns 0 when either
// endpoint is missing. Partial days round up before the boundary is added.
func CalculateDays(from, to time.Time) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	diff := to.Sub(from)
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// CalculateCreditCost prices a trip by length. Tiers are flat up to two
// weeks and scale per day beyond that, which makes day 14 cost 250 and day
// 15 cost 375. The jump at the tier boundary is intentional.
func CalculateCreditCost(days int) int {
	if days >= 15 {
		return 350 + (days-14)*25
	}
	if days >= 10 {
		return 250
	}
	return 100
}

// ToGuideRequest converts raw questionnaire state into the wire request.
// Pure: no side effects, no network access, and it never fails; missing
// data simply produces the corresponding zero or default value. Callers
// are expected to gate submission on Validate.
func ToGuideRequest(form Form) GuideRequest {
	interests := combineInterests(form.SelectedInterests, form.TripTypes)
	if len(interests) > maxInterests {
		interests = interests[:maxInterests]
	}

	budget := form.BudgetLevel
	if budget == "" {
		budget = BudgetMedium
	}
	travelType := form.TravelType
	if travelType == "" {
		travelType = TravelSolo
	}

	return GuideRequest{
		City:       form.Destination,
		Days:       CalculateDays(form.DateFrom, form.DateTo),
		Interests:  interests,
		Budget:     budget,
		TravelType: travelType,
		Dislikes:   splitDislikes(form.Dislikes),
	}
}

// combineInterests unions mapped interest tags with the raw trip type tags,
// deduplicated in first-seen order with mapped interests first.
func combineInterests(labels, tripTypes []string) []string {
	seen := make(map[string]struct{})
	combined := make([]string, 0, len(labels)+len(tripTypes))
	for _, tag := range MapInterests(labels) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		combined = append(combined, tag)
	}
	for _, tag := range tripTypes {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		combined = append(combined, tag)
	}
	return combined
}

// splitDislikes normalizes the free-text dislikes field into a list. Tokens
// are split on commas, semicolons and newlines; an all-empty result becomes
// nil, never an empty slice, so it marshals as JSON null.
func splitDislikes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []string
	for _, token := range dislikesSeparator.Split(raw, -1) {
		token = strings.TrimSpace(token)
		if token != "" {
			items = append(items, token)
		}
	}
	return items
}
