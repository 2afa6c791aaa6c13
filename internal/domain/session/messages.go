package session

import (
	"errors"
	"fmt"

	"github.com/scapet/scapet-go/internal/infra/api"
)

// userMessages maps server error keys to the user-facing strings shown in
// the UI. Keys missing from the table fall through as-is.
var userMessages = map[string]string{
	// Authentication
	"Invalid credentials": "Email o contraseña incorrectos.",
	"User already exists": "Este email ya está registrado.",
	"Invalid token":       "Tu sesión ha expirado. Por favor inicia sesión nuevamente.",
	"Token has expired":   "Tu sesión ha expirado. Por favor inicia sesión nuevamente.",

	// Credits
	"Insufficient credits": "No tienes suficientes créditos para generar este viaje.",
	"Not enough credits":   "No tienes suficientes créditos para generar este viaje.",

	// Validation
	"Invalid email format": "Por favor ingresa un email válido.",
	"Password too short":   "La contraseña debe tener al menos 8 caracteres.",
	"City name too short":  "El nombre de la ciudad debe tener al menos 2 caracteres.",
	"Too many days":        "El viaje no puede ser mayor a 14 días.",

	// Server
	"Internal server error": "Error del servidor. Por favor intenta más tarde.",
	"Service unavailable":   "El servicio no está disponible. Por favor intenta más tarde.",
	"Request timeout":       "La solicitud tardó demasiado. Por favor intenta nuevamente.",
	"Rate limit exceeded":   "Has enviado demasiadas solicitudes. Por favor intenta más tarde.",

	// Network
	"Network Error":   "Error de conexión. Por favor verifica tu internet.",
	api.MsgNoResponse: "No hay respuesta del servidor. Verifica tu conexión.",
}

const msgUnexpected = "Ocurrió un error inesperado."

// TranslateKey resolves a server error key to its user-facing message,
// falling back to the raw key, then to a generic message for empty input.
func TranslateKey(key string) string {
	if msg, ok := userMessages[key]; ok {
		return msg
	}
	if key != "" {
		return key
	}
	return msgUnexpected
}

// Translate extracts the normalized message from a transport error and
// resolves it through the table.
func Translate(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return TranslateKey(apiErr.Message)
	}
	return TranslateKey(err.Error())
}

// FormatValidationErrors flattens a 422 error list into a field-keyed map,
// using the last location segment as the field name.
func FormatValidationErrors(items []api.ValidationItem) map[string]string {
	formatted := make(map[string]string, len(items))
	for _, item := range items {
		field := "general"
		if len(item.Loc) > 0 {
			field = fmt.Sprint(item.Loc[len(item.Loc)-1])
		}
		msg := item.Msg
		if msg == "" {
			msg = "Validation error"
		}
		formatted[field] = msg
	}
	return formatted
}
