package reservation

import "github.com/BruksfildServices01/phone-reserve/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending       Status = "pending"
	StatusConfirmed     Status = "confirmed"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
	StatusCancelPending Status = "cancel_pending"
)

var transitions = map[Status][]Status{
	StatusPending:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed:     {StatusCompleted, StatusCancelPending},
	StatusCancelPending: {StatusCancelled, StatusConfirmed},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusCancelPending:
		return true
	}
	return false
}

// Active statuses hold their time slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPending
}
