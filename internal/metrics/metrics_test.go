package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(reservationCreated.WithLabelValues("conflict"))
	IncReservationCreated("conflict")
	assert.Equal(t, before+1, testutil.ToFloat64(reservationCreated.WithLabelValues("conflict")))

	before = testutil.ToFloat64(availabilityServed.WithLabelValues("default_missing"))
	IncAvailability("default_missing")
	assert.Equal(t, before+1, testutil.ToFloat64(availabilityServed.WithLabelValues("default_missing")))

	before = testutil.ToFloat64(rateLimited)
	IncRateLimited()
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimited))
}
