package session

import "errors"

// ErrNoSession indicates an operation that needs an authenticated session
// was called without one.
var ErrNoSession = errors.New("no active session")
