package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

var (
	customer = auth.Session{UserID: 7, Role: auth.RoleConsumer}
	stranger = auth.Session{UserID: 8, Role: auth.RoleConsumer}
	seller   = auth.Session{UserID: 3, Role: auth.RoleSeller, StoreID: 1}
	rival    = auth.Session{UserID: 4, Role: auth.RoleSeller, StoreID: 2}
	admin    = auth.Session{UserID: 1, Role: auth.RoleAdmin}
)

func seedPending(repo *memRepo) *models.Reservation {
	return repo.seed(models.Reservation{
		StoreID:         1,
		UserID:          7,
		ReservationDate: "2025-10-18",
		ReservationTime: "11:00",
		Status:          "pending",
	})
}

func TestTransition_Lifecycle(t *testing.T) {
	repo := newMemRepo()
	auditor := &recordingAuditor{}
	uc := NewTransitionReservation(repo, auditor, fixedClock)
	ctx := context.Background()
	r := seedPending(repo)

	res, err := uc.Execute(ctx, TransitionInput{ReservationID: r.ID, Session: seller, Action: domain.ActionConfirm})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)
	assert.NotNil(t, res.ConfirmedAt)

	// consumer "cancel" on a confirmed reservation becomes a request
	res, err = uc.Execute(ctx, TransitionInput{ReservationID: r.ID, Session: customer, Action: domain.ActionCancel, Reason: "일정 변경"})
	require.NoError(t, err)
	assert.Equal(t, "cancel_pending", res.Status)
	assert.Equal(t, "일정 변경", res.CancelReason)

	res, err = uc.Execute(ctx, TransitionInput{ReservationID: r.ID, Session: seller, Action: domain.ActionRejectCancel})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)

	res, err = uc.Execute(ctx, TransitionInput{ReservationID: r.ID, Session: admin, Action: domain.ActionComplete})
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)

	_, err = uc.Execute(ctx, TransitionInput{ReservationID: r.ID, Session: seller, Action: domain.ActionConfirm})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	assert.Equal(t, []string{
		"reservation_confirm",
		"reservation_request_cancel",
		"reservation_reject_cancel",
		"reservation_complete",
	}, auditor.actions())
}

func TestTransition_ConsumerCancelsPending(t *testing.T) {
	repo := newMemRepo()
	uc := NewTransitionReservation(repo, &recordingAuditor{}, fixedClock)
	r := seedPending(repo)

	res, err := uc.Execute(context.Background(), TransitionInput{ReservationID: r.ID, Session: customer, Action: domain.ActionCancel})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)
	assert.NotNil(t, res.CancelledAt)
}

func TestTransition_Visibility(t *testing.T) {
	repo := newMemRepo()
	uc := NewTransitionReservation(repo, &recordingAuditor{}, fixedClock)
	ctx := context.Background()
	r := seedPending(repo)

	for _, s := range []auth.Session{stranger, rival} {
		_, err := uc.Execute(ctx, TransitionInput{ReservationID: r.ID, Session: s, Action: domain.ActionCancel})
		assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
	}

	_, err := uc.Execute(ctx, TransitionInput{ReservationID: 12345, Session: admin, Action: domain.ActionCancel})
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
}

func TestTransition_ConsumerCannotConfirm(t *testing.T) {
	repo := newMemRepo()
	uc := NewTransitionReservation(repo, &recordingAuditor{}, fixedClock)
	r := seedPending(repo)

	_, err := uc.Execute(context.Background(), TransitionInput{ReservationID: r.ID, Session: customer, Action: domain.ActionConfirm})
	assert.True(t, httperr.IsBusiness(err, "action_not_allowed"))
}

// storeDownRepo fails store lookups but still serves reservations.
type storeDownRepo struct {
	*memRepo
}

func (storeDownRepo) GetStore(context.Context, uint) (*models.Store, error) {
	return nil, errors.New("connection reset")
}

func TestTransition_StoreLookupFails(t *testing.T) {
	repo := newMemRepo()
	auditor := &recordingAuditor{}
	uc := NewTransitionReservation(storeDownRepo{memRepo: repo}, auditor, fixedClock)
	r := seedPending(repo)

	_, err := uc.Execute(context.Background(), TransitionInput{ReservationID: r.ID, Session: seller, Action: domain.ActionConfirm})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	stored, err := repo.GetReservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Status)
	assert.Empty(t, auditor.actions())
}

func TestListReservations(t *testing.T) {
	repo := newMemRepo()
	seedPending(repo)
	repo.seed(models.Reservation{StoreID: 1, UserID: 8, ReservationDate: "2025-10-19", ReservationTime: "10:00", Status: "confirmed"})
	uc := NewListReservations(repo)
	ctx := context.Background()

	mine, err := uc.ForUser(ctx, 7, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	day, err := uc.ForStore(ctx, 1, "2025-10-19", "")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, uint(8), day[0].UserID)

	confirmed, err := uc.ForStore(ctx, 1, "", "confirmed")
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	_, err = uc.ForStore(ctx, 1, "", "lost")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = uc.ForStore(ctx, 1, "tomorrow", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
