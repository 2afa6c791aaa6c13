package questionnaire

// interestMapping translates UI-facing interest labels to the backend
// category tags. Labels missing from the table are dropped, not rejected.
var interestMapping = map[string]string{
	"Photography":      "culture",
	"Art & Museums":    "culture",
	"Beaches":          "nature",
	"Mountains":        "nature",
	"Wildlife":         "nature",
	"Architecture":     "history",
	"Local Cuisine":    "food",
	"Wine Tasting":     "food",
	"Hiking":           "nature",
	"Water Sports":     "nature",
	"Music & Concerts": "culture",
	"Festivals":        "culture",
	"Historical Sites": "history",
	"Street Food":      "food",
	"Yoga & Wellness":  "relaxation",
	"Shopping":         "shopping",
	"Nightlife":        "nightlife",
	"Adventure":        "adventure",
}

// InterestLabels lists the selectable labels in display order.
var InterestLabels = []string{
	"Photography", "Art & Museums", "Beaches", "Mountains", "Wildlife",
	"Architecture", "Local Cuisine", "Wine Tasting", "Hiking", "Water Sports",
	"Music & Concerts", "Festivals", "Historical Sites", "Street Food",
	"Yoga & Wellness",
}

// TripTypeTags lists the backend category tags selectable as trip types.
var TripTypeTags = []string{
	"food", "history", "nature", "culture",
	"nightlife", "shopping", "adventure", "relaxation",
}

// MapInterests translates UI labels through the lookup table, preserving
// first-seen order and silently dropping unknown labels.
func MapInterests(labels []string) []string {
	mapped := make([]string, 0, len(labels))
	for _, label := range labels {
		if tag, ok := interestMapping[label]; ok {
			mapped = append(mapped, tag)
		}
	}
	return mapped
}
