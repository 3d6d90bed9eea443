package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts register and login attempts by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by action and result",
		},
		[]string{"action", "result"}, // action: register | login; result: success | failure
	)

	// authDuration tracks register and login latency (dominated by bcrypt).
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration by action",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"action"},
	)

	// tokenRejections counts protected requests turned away by the middleware.
	tokenRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_rejections_total",
			Help: "Requests rejected for a missing or invalid token",
		},
		[]string{"reason"},
	)
)

// RecordAuthRequest records a register or login attempt.
func RecordAuthRequest(action, result string, duration time.Duration) {
	authRequestsTotal.WithLabelValues(action, result).Inc()
	authDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordTokenRejection records a 401 from Required.
func RecordTokenRejection(reason string) {
	tokenRejections.WithLabelValues(reason).Inc()
}
