package monitoring

import (
	"time"

	"growthquest/services/inventory"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	holdOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_hold_operations_total",
			Help: "Seat hold attempts by outcome",
		},
		[]string{"outcome"},
	)

	bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Bookings created by status",
		},
		[]string{"status"},
	)

	sessionExpiries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hold_session_expiries_total",
			Help: "Hold sessions expired or cancelled, each releasing one seat",
		},
	)

	conciergeMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_messages_total",
			Help: "Concierge messages by classified intent",
		},
		[]string{"intent"},
	)

	seatsLeft = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cohort_seats_left",
			Help: "Current seats left per cohort",
		},
		[]string{"cohort_id"},
	)
)

// TrackHold records a hold attempt outcome ("held", "sold_out", "not_found").
func TrackHold(outcome string) {
	holdOperations.WithLabelValues(outcome).Inc()
}

// TrackBooking records a created booking by status.
func TrackBooking(status string) {
	bookings.WithLabelValues(status).Inc()
}

// TrackExpiry records a session expiry or cancellation.
func TrackExpiry() {
	sessionExpiries.Inc()
}

// TrackConciergeMessage records a concierge message by intent.
func TrackConciergeMessage(intent string) {
	conciergeMessages.WithLabelValues(intent).Inc()
}

// Monitor samples inventory state into gauges on a fixed interval.
type Monitor struct {
	inv *inventory.Store
}

func NewMonitor(inv *inventory.Store) *Monitor {
	monitor := &Monitor{inv: inv}
	go monitor.collectMetrics()
	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		for _, c := range m.inv.Snapshot() {
			seatsLeft.WithLabelValues(c.ID).Set(float64(c.SeatsLeft))
		}
	}
}
