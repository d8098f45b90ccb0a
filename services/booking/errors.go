package booking

import (
	"errors"
	"fmt"
)

// Stable machine codes carried on every domain error.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeClosedDay          = "CLOSED_DAY"
	CodeOutsideHours       = "OUTSIDE_HOURS"
	CodeLeadTime           = "LEAD_TIME"
	CodeCancellationWindow = "CANCELLATION_WINDOW"
	CodeRescheduleLimit    = "RESCHEDULE_LIMIT"
	CodeSlotConflict       = "SLOT_CONFLICT"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeValidation         = "VALIDATION"
)

// Error is the booking engine's domain error. Policy violations carry the
// violated threshold so callers can render an actionable message.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Threshold int    `json:"threshold,omitempty"` // hours or count, depending on Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(what string) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func NewClosedDay(date string) error {
	return &Error{Code: CodeClosedDay, Message: fmt.Sprintf("unit is closed on %s", date)}
}

func NewOutsideHours() error {
	return &Error{Code: CodeOutsideHours, Message: "requested time is outside operating hours"}
}

func NewLeadTimeViolation(minLeadHours int) error {
	return &Error{
		Code:      CodeLeadTime,
		Message:   fmt.Sprintf("booking requires at least %d hours of notice", minLeadHours),
		Threshold: minLeadHours,
	}
}

func NewCancellationWindowViolation(windowHours int) error {
	return &Error{
		Code:      CodeCancellationWindow,
		Message:   fmt.Sprintf("cancellation requires at least %d hours of notice", windowHours),
		Threshold: windowHours,
	}
}

func NewRescheduleLimitExceeded(maxReschedules int) error {
	return &Error{
		Code:      CodeRescheduleLimit,
		Message:   fmt.Sprintf("appointment has already been rescheduled %d times", maxReschedules),
		Threshold: maxReschedules,
	}
}

func NewSlotConflict() error {
	return &Error{Code: CodeSlotConflict, Message: "the requested slot is no longer available"}
}

func NewInvalidTransition(from, to string) error {
	return &Error{Code: CodeInvalidTransition, Message: fmt.Sprintf("cannot move appointment from %s to %s", from, to)}
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

// CodeOf extracts the machine code from err, or "" for non-domain errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Retryable reports whether a fresh availability fetch and resubmit is the
// correct caller response. Only slot conflicts qualify; every other code
// means the request itself is invalid.
func Retryable(err error) bool {
	return CodeOf(err) == CodeSlotConflict
}
