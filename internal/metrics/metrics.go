package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	reservationCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phone_reserve",
			Name:      "reservation_created_total",
			Help:      "Reservation submissions by outcome.",
		},
		[]string{"outcome"},
	)

	reservationTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phone_reserve",
			Name:      "reservation_transition_total",
			Help:      "Reservation status changes by action.",
		},
		[]string{"action"},
	)

	availabilityServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phone_reserve",
			Name:      "availability_requests_total",
			Help:      "Availability lookups by operating hours source.",
		},
		[]string{"hours_source"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "phone_reserve",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationCreated, reservationTransition, availabilityServed, rateLimited)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncReservationCreated(outcome string) {
	reservationCreated.WithLabelValues(outcome).Inc()
}

func IncReservationTransition(action string) {
	reservationTransition.WithLabelValues(action).Inc()
}

func IncAvailability(source string) {
	availabilityServed.WithLabelValues(source).Inc()
}

func IncRateLimited() {
	rateLimited.Inc()
}
