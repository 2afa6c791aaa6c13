package questionnaire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDays(t *testing.T) {
	day := date(2025, time.January, 1)

	require.Equal(t, 1, CalculateDays(day, day), "same-day trip counts one day")
	require.Equal(t, 5, CalculateDays(date(2025, time.January, 1), date(2025, time.January, 5)))
	require.Equal(t, 0, CalculateDays(time.Time{}, day))
	require.Equal(t, 0, CalculateDays(day, time.Time{}))
}

func TestCalculateCreditCost(t *testing.T) {
	cases := []struct {
		days int
		cost int
	}{
		{days: 1, cost: 100},
		{days: 9, cost: 100},
		{days: 10, cost: 250},
		{days: 14, cost: 250},
		{days: 15, cost: 375},
		{days: 16, cost: 400},
		{days: 20, cost: 500},
	}
	for _, tc := range cases {
		if got := CalculateCreditCost(tc.days); got != tc.cost {
			t.Fatalf("days=%d: expected %d got %d", tc.days, tc.cost, got)
		}
	}
}

func TestMapInterests(t *testing.T) {
	tags := MapInterests([]string{"Beaches", "Knitting", "Local Cuisine"})
	require.Equal(t, []string{"nature", "food"}, tags, "unknown labels are dropped silently")
}

func TestToGuideRequest(t *testing.T) {
	day := date(2025, time.June, 10)
	req := ToGuideRequest(Form{
		Destination:       "Paris",
		DateFrom:          day,
		DateTo:            day,
		SelectedInterests: []string{"Beaches"},
		TripTypes:         []string{"food"},
		TravelType:        "solo",
	})

	require.Equal(t, "Paris", req.City)
	require.Equal(t, 1, req.Days)
	require.Equal(t, []string{"nature", "food"}, req.Interests)
	require.Equal(t, "medium", req.Budget, "empty budget level defaults to medium")
	require.Equal(t, "solo", req.TravelType)
	require.Nil(t, req.Dislikes)
}

func TestToGuideRequestCapsInterests(t *testing.T) {
	form := Form{
		Destination:       "Rome",
		SelectedInterests: InterestLabels,
		// Extra tags push the unique union past the cap.
		TripTypes: append(append([]string{}, TripTypeTags...), "sightseeing", "rest"),
	}
	req := ToGuideRequest(form)
	require.Len(t, req.Interests, 8, "truncated to the first 8 in array order")

	seen := make(map[string]struct{})
	for _, tag := range req.Interests {
		_, dup := seen[tag]
		require.False(t, dup, "interest %q duplicated", tag)
		seen[tag] = struct{}{}
	}
}

func TestToGuideRequestDefaultsTravelType(t *testing.T) {
	req := ToGuideRequest(Form{Destination: "Lima"})
	require.Equal(t, "solo", req.TravelType)
}

func TestSplitDislikes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  []string
	}{
		{name: "mixed separators", in: "sand, crowds;\nnoise", out: []string{"sand", "crowds", "noise"}},
		{name: "blank input", in: "   ", out: nil},
		{name: "empty tokens dropped", in: ",,;\n, rain ,", out: []string{"rain"}},
		{name: "empty string", in: "", out: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, splitDislikes(tc.in))
		})
	}
}
