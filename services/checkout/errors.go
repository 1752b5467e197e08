package checkout

import "fmt"

// Error is a typed checkout failure the caller can branch on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrUnknownAddOn means a selected add-on does not exist for the held
// cohort's offering. The confirm fails before the session is touched.
var ErrUnknownAddOn = &Error{Code: "unknownAddOn", Message: "selected add-on not available for this offering"}
