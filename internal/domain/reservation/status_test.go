package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelPending},
		{StatusCancelPending, StatusCancelled},
		{StatusCancelPending, StatusConfirmed},
	}
	for _, p := range allowed {
		assert.NoError(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}

	denied := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelPending, StatusCompleted},
	}
	for _, p := range denied {
		err := CanTransition(p[0], p[1])
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", p[0], p[1])
	}
}

func TestStatusFlags(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCancelPending.Active())
	assert.False(t, StatusCancelled.Active())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, Status("bogus").Valid())
}

func TestApply(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		from   Status
		action Action
		role   auth.Role
		want   Status
		err    string
	}{
		{"seller confirms", StatusPending, ActionConfirm, auth.RoleSeller, StatusConfirmed, ""},
		{"seller completes", StatusConfirmed, ActionComplete, auth.RoleSeller, StatusCompleted, ""},
		{"consumer cancels pending", StatusPending, ActionCancel, auth.RoleConsumer, StatusCancelled, ""},
		{"consumer cannot cancel confirmed", StatusConfirmed, ActionCancel, auth.RoleConsumer, "", "invalid_state"},
		{"consumer requests cancel", StatusConfirmed, ActionRequestCancel, auth.RoleConsumer, StatusCancelPending, ""},
		{"seller approves cancel", StatusCancelPending, ActionApproveCancel, auth.RoleSeller, StatusCancelled, ""},
		{"seller rejects cancel", StatusCancelPending, ActionRejectCancel, auth.RoleSeller, StatusConfirmed, ""},
		{"reject needs cancel_pending", StatusPending, ActionRejectCancel, auth.RoleSeller, "", "invalid_state"},
		{"consumer cannot confirm", StatusPending, ActionConfirm, auth.RoleConsumer, "", "action_not_allowed"},
		{"seller cannot request", StatusConfirmed, ActionRequestCancel, auth.RoleSeller, "", "action_not_allowed"},
		{"admin cancels pending", StatusPending, ActionCancel, auth.RoleAdmin, StatusCancelled, ""},
		{"completed is terminal", StatusCompleted, ActionComplete, auth.RoleAdmin, "", "invalid_state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Reservation{Status: string(tt.from)}
			from, err := Apply(r, tt.action, tt.role, " changed my mind ", now)

			if tt.err != "" {
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, tt.err), "got %v", err)
				assert.Equal(t, string(tt.from), r.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, string(tt.want), r.Status)
		})
	}
}

func TestApply_Timestamps(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	r := &models.Reservation{Status: string(StatusConfirmed)}

	_, err := Apply(r, ActionRequestCancel, auth.RoleConsumer, " 일정 변경 ", now)
	require.NoError(t, err)
	require.NotNil(t, r.CancelRequestedAt)
	assert.Equal(t, "일정 변경", r.CancelReason)

	_, err = Apply(r, ActionRejectCancel, auth.RoleSeller, "", now)
	require.NoError(t, err)
	assert.Nil(t, r.CancelRequestedAt)
	assert.Nil(t, r.CancelledAt)
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("approve-cancel")
	assert.True(t, ok)
	assert.Equal(t, ActionApproveCancel, a)

	_, ok = ParseAction("delete")
	assert.False(t, ok)
}

func TestConsumerCancelAction(t *testing.T) {
	assert.Equal(t, ActionCancel, ConsumerCancelAction(StatusPending))
	assert.Equal(t, ActionRequestCancel, ConsumerCancelAction(StatusConfirmed))
}

func TestBookings(t *testing.T) {
	rows := []models.Reservation{
		{ReservationTime: "10:30", Status: string(StatusConfirmed)},
		{ReservationTime: "11:00", Status: string(StatusCancelled)},
		{ReservationTime: "11:30", Status: string(StatusCancelPending)},
	}

	got := Bookings(rows)
	require.Len(t, got, 3)
	assert.True(t, got[0].Active)
	assert.False(t, got[1].Active)
	assert.False(t, got[2].Active)
}

func TestNewCode(t *testing.T) {
	a, b := NewCode(), NewCode()
	assert.Len(t, a, 10)
	assert.NotEqual(t, a, b)
}
