package questionnaire

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Trip length limits enforced before submission.
const (
	minTripDays = 1
	maxTripDays = 14

	minDestinationLen = 2
	maxDestinationLen = 100
)

// Validate checks raw questionnaire state against the business rules,
// re-deriving day count, interest union and credit cost independently of
// ToGuideRequest. It never fails on missing data; absence simply produces
// the matching field error. One message per field; a later rule for the
// same field overwrites an earlier one.
func Validate(form Form, userCredits int) Result {
	errors := make(map[string]string)

	if utf8.RuneCountInString(strings.TrimSpace(form.Destination)) < minDestinationLen {
		errors["destination"] = "El destino debe tener al menos 2 caracteres"
	}
	if form.Destination != "" && utf8.RuneCountInString(form.Destination) > maxDestinationLen {
		errors["destination"] = "El destino no puede tener más de 100 caracteres"
	}

	if form.DateFrom.IsZero() || form.DateTo.IsZero() {
		errors["dateRange"] = "Debes seleccionar las fechas del viaje"
	} else {
		days := CalculateDays(form.DateFrom, form.DateTo)
		if days > maxTripDays {
			errors["dateRange"] = "El viaje no puede ser mayor a 14 días"
		}
		if days < minTripDays {
			errors["dateRange"] = "El viaje debe ser de al menos 1 día"
		}
	}

	unique := countUniqueInterests(form.SelectedInterests, form.TripTypes)
	if unique == 0 {
		errors["interests"] = "Debes seleccionar al menos un interés"
	}
	if unique > maxInterests {
		errors["interests"] = fmt.Sprintf("No puedes seleccionar más de 8 intereses únicos en total (tienes %d)", unique)
	}

	// When HasBudget is answered it selects the authoritative path: a
	// numeric amount or a tier, never a mix. Unanswered forms just need
	// one of the two present.
	switch {
	case form.HasBudget == nil:
		if form.BudgetLevel == "" && form.Budget == 0 {
			errors["budget"] = "Debes seleccionar un presupuesto"
		}
	case *form.HasBudget:
		if form.Budget <= 0 {
			errors["budget"] = "Debes seleccionar un presupuesto"
		}
	default:
		if form.BudgetLevel == "" {
			errors["budget"] = "Debes seleccionar un presupuesto"
		}
	}

	if form.TravelType == "" {
		errors["travelType"] = "Debes seleccionar el tipo de viaje"
	}

	// Credit sufficiency is only decidable once both dates are known.
	if !form.DateFrom.IsZero() && !form.DateTo.IsZero() {
		cost := CalculateCreditCost(CalculateDays(form.DateFrom, form.DateTo))
		if userCredits < cost {
			errors["credits"] = fmt.Sprintf("No tienes suficientes créditos. Necesitas %d créditos, tienes %d", cost, userCredits)
		}
	}

	return Result{Valid: len(errors) == 0, Errors: errors}
}

func countUniqueInterests(labels, tripTypes []string) int {
	seen := make(map[string]struct{})
	for _, tag := range MapInterests(labels) {
		seen[tag] = struct{}{}
	}
	for _, tag := range tripTypes {
		seen[tag] = struct{}{}
	}
	return len(seen)
}
