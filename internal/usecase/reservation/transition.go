package reservation

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/metrics"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

type TransitionInput struct {
	ReservationID uint
	Session       auth.Session
	Action        domain.Action
	Reason        string
}

type TransitionReservation struct {
	repo  domain.Repository
	audit Auditor
	clock timezone.Clock
}

func NewTransitionReservation(
	repo domain.Repository,
	audit Auditor,
	clock timezone.Clock,
) *TransitionReservation {
	return &TransitionReservation{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *TransitionReservation) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservation(ctx, in.ReservationID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	if !canSee(in.Session, res) {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	action := in.Action
	if in.Session.Role == auth.RoleConsumer && action == domain.ActionCancel {
		action = domain.ConsumerCancelAction(domain.Status(res.Status))
	}

	// Same-day rules are judged on the store's clock.
	store, err := uc.repo.GetStore(ctx, res.StoreID)
	if err != nil {
		return nil, fmt.Errorf("load store %d for reservation %d: %w", res.StoreID, res.ID, err)
	}
	loc := timezone.Location(store.Timezone)
	from, err := domain.Apply(res, action, in.Session.Role, in.Reason, uc.clock().In(loc))
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, res, from); err != nil {
		return nil, err
	}

	metrics.IncReservationTransition(string(action))
	uc.audit.Dispatch(audit.Event{
		StoreID:  res.StoreID,
		UserID:   &in.Session.UserID,
		Action:   "reservation_" + string(action),
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"from": string(from), "to": res.Status},
	})

	return res, nil
}

func canSee(s auth.Session, res *models.Reservation) bool {
	switch s.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleSeller:
		return s.StoreID != 0 && res.StoreID == s.StoreID
	case auth.RoleConsumer:
		return res.UserID == s.UserID
	}
	return false
}
