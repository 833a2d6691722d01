package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "http_requests_total",
			Help:      "Count of API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created.",
		},
	)

	reservationUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "reservation_updated_total",
			Help:      "Count of reservations updated.",
		},
	)

	reservationDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "reservation_deleted_total",
			Help:      "Count of reservations deleted.",
		},
	)

	searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "searches_total",
			Help:      "Count of searches by kind (name or last4).",
		},
		[]string{"kind"},
	)

	ledgerLoadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "ledger_load_failures_total",
			Help:      "Count of failed ledger loads.",
		},
	)

	loginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salonmate",
			Name:      "login_failures_total",
			Help:      "Count of rejected login attempts.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationCreated, reservationUpdated,
			reservationDeleted, searches, ledgerLoadFailures, loginFailures)
	})
}

func IncHTTPRequest(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncReservationCreated() {
	reservationCreated.Inc()
}

func IncReservationUpdated() {
	reservationUpdated.Inc()
}

func IncReservationDeleted() {
	reservationDeleted.Inc()
}

func IncSearch(kind string) {
	searches.WithLabelValues(kind).Inc()
}

func IncLedgerLoadFailure() {
	ledgerLoadFailures.Inc()
}

func IncLoginFailure() {
	loginFailures.Inc()
}
