package inventory

import "fmt"

// Error is a typed inventory failure the caller can branch on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrCohortNotFound means the cohort id is unknown to the store.
	ErrCohortNotFound = &Error{Code: "cohortNotFound", Message: "cohort not found"}
	// ErrSoldOut means the cohort has no seats left; the caller should route
	// the holder to the waitlist flow.
	ErrSoldOut = &Error{Code: "soldOut", Message: "no seats left for this cohort"}
)
