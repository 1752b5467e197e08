package holdsession

import "fmt"

// Error is a typed session failure the caller can branch on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrSessionNotFound means the session id is unknown.
	ErrSessionNotFound = &Error{Code: "sessionNotFound", Message: "hold session not found"}
	// ErrHoldExpired means confirm or cancel was attempted after the hold's
	// expiry; the caller should restart the flow from discovery.
	ErrHoldExpired = &Error{Code: "holdExpired", Message: "hold has expired"}
	// ErrInvalidState means an operation was attempted from a state that does
	// not permit it. This indicates a caller bug and is logged loudly, but it
	// is returned as a recoverable error rather than panicking.
	ErrInvalidState = &Error{Code: "invalidState", Message: "operation not valid in current session state"}
)
