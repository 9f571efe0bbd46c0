package booking

import "fmt"

// State-machine rejection reasons.
const (
	ReasonSameState          = "same_state"
	ReasonInvalidTransition  = "invalid_transition"
	ReasonUnauthorizedRole   = "unauthorized_role"
	ReasonPreconditionFailed = "precondition_failed"
)

// ValidationError reports malformed input, rejected before any transaction
// opens.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError builds a ValidationError with a stable machine code.
func NewValidationError(code, msg string) error {
	return &ValidationError{Code: code, Message: msg}
}

// AuthorizationError reports a caller acting on a booking it does not own.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return "unauthorized: " + e.Message
}

// StateError reports an illegal lifecycle transition. Reason is one of the
// machine-readable rejection reasons above.
type StateError struct {
	Reason  string
	From    string
	To      string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", e.Reason, e.From, e.To, e.Message)
}

// DateConflictError reports that the requested range overlaps an existing
// blocked interval. Never retried automatically: the caller must re-decide.
type DateConflictError struct {
	ConflictingBookingID string
}

func (e *DateConflictError) Error() string {
	if e.ConflictingBookingID == "" {
		return "date conflict with an existing confirmed booking"
	}
	return "date conflict with booking " + e.ConflictingBookingID
}

// AdmissionError reports that abuse-prevention policy refused a new booking
// (too many active bookings, or cooldown still running).
type AdmissionError struct {
	Message string
}

func (e *AdmissionError) Error() string {
	return "admission refused: " + e.Message
}

// TransientError wraps a storage failure that survived bounded retries. The
// caller may try again; nothing was partially applied.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient storage failure, try again: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }
