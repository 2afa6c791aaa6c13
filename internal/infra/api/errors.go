package api

// Normalized transport messages. Every error leaving this package carries a
// human-readable string, so callers surface it without interpretation.
const (
	MsgNoResponse = "No response from server. Please check your connection."
	MsgGeneric    = "An error occurred"
)

// Error is a failed exchange with the remote service. Status is zero when
// no response was received at all.
type Error struct {
	Status  int
	Message string
	Err     error
	// Validation holds parsed 422 field violations, when the server sent any.
	Validation []ValidationItem
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether the server rejected the credential.
func (e *Error) IsUnauthorized() bool {
	return e.Status == 401
}
