package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scapet/scapet-go/internal/infra/api"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "known key", in: "Invalid credentials", out: "Email o contraseña incorrectos."},
		{name: "no response", in: api.MsgNoResponse, out: "No hay respuesta del servidor. Verifica tu conexión."},
		{name: "unknown key passes through", in: "Planet misaligned", out: "Planet misaligned"},
		{name: "empty key", in: "", out: "Ocurrió un error inesperado."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, TranslateKey(tc.in))
		})
	}
}

func TestTranslateUnwrapsTransportErrors(t *testing.T) {
	err := &api.Error{Status: 401, Message: "Token has expired"}
	require.Equal(t, "Tu sesión ha expirado. Por favor inicia sesión nuevamente.", Translate(err))

	require.Equal(t, "plain failure", Translate(errors.New("plain failure")))
	require.Empty(t, Translate(nil))
}

func TestFormatValidationErrors(t *testing.T) {
	items := []api.ValidationItem{
		{Loc: []any{"body", "city"}, Msg: "City name too short"},
		{Loc: []any{}, Msg: "broken"},
		{Loc: []any{"body", "days"}},
	}

	formatted := FormatValidationErrors(items)

	require.Equal(t, "City name too short", formatted["city"])
	require.Equal(t, "broken", formatted["general"])
	require.Equal(t, "Validation error", formatted["days"])
}
