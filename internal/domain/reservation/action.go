package reservation

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

type Action string

const (
	ActionConfirm       Action = "confirm"
	ActionComplete      Action = "complete"
	ActionCancel        Action = "cancel"
	ActionRequestCancel Action = "request_cancel"
	ActionApproveCancel Action = "approve_cancel"
	ActionRejectCancel  Action = "reject_cancel"
)

// ParseAction accepts both snake and kebab case ("approve-cancel").
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch a {
	case ActionConfirm, ActionComplete, ActionCancel, ActionRequestCancel, ActionApproveCancel, ActionRejectCancel:
		return a, true
	}
	return "", false
}

func (a Action) target() Status {
	switch a {
	case ActionConfirm, ActionRejectCancel:
		return StatusConfirmed
	case ActionComplete:
		return StatusCompleted
	case ActionRequestCancel:
		return StatusCancelPending
	default:
		return StatusCancelled
	}
}

func (a Action) allowed(role auth.Role) bool {
	switch role {
	case auth.RoleAdmin, auth.RoleSeller:
		return a != ActionRequestCancel
	case auth.RoleConsumer:
		return a == ActionCancel || a == ActionRequestCancel
	}
	return false
}

// ===============================
// Domain Actions
// ===============================

// Apply moves r through the state machine on behalf of role. A consumer's
// cancel only works while the reservation is still pending; once confirmed
// the consumer has to request it.
func Apply(r *models.Reservation, action Action, role auth.Role, reason string, now time.Time) (Status, error) {
	if !action.allowed(role) {
		return "", httperr.ErrBusiness("action_not_allowed")
	}

	from := Status(r.Status)
	if action == ActionApproveCancel || action == ActionRejectCancel {
		if from != StatusCancelPending {
			return "", httperr.ErrBusiness("invalid_state")
		}
	}
	if action == ActionCancel && from != StatusPending {
		return "", httperr.ErrBusiness("invalid_state")
	}

	to := action.target()
	if err := CanTransition(from, to); err != nil {
		return "", err
	}

	r.Status = string(to)
	switch action {
	case ActionConfirm:
		r.ConfirmedAt = &now
	case ActionComplete:
		r.CompletedAt = &now
	case ActionRequestCancel:
		r.CancelRequestedAt = &now
		r.CancelReason = strings.TrimSpace(reason)
	case ActionCancel, ActionApproveCancel:
		r.CancelledAt = &now
		if reason = strings.TrimSpace(reason); reason != "" {
			r.CancelReason = reason
		}
	case ActionRejectCancel:
		r.CancelRequestedAt = nil
	}

	return from, nil
}

// ConsumerCancelAction picks what "cancel" means for a customer given the
// current status.
func ConsumerCancelAction(current Status) Action {
	if current == StatusConfirmed {
		return ActionRequestCancel
	}
	return ActionCancel
}
