package mercury

import (
	"time"

	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Channel labels.
const (
	ChannelGraphQL = "graphql"
	ChannelWrite   = "write"
)

var (
	// Backend metrics
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mercurybridge_backend_requests_total",
			Help: "Total number of indexing service requests by channel and operation",
		},
		[]string{"channel", "operation"},
	)

	BackendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mercurybridge_backend_errors_total",
			Help: "Total number of failed indexing service requests by channel, operation and error kind",
		},
		[]string{"channel", "operation", "kind"},
	)

	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mercurybridge_backend_request_duration_seconds",
			Help:    "Duration of indexing service requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel", "operation"},
	)

	TokenRenewals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mercurybridge_token_renewals_total",
			Help: "Total number of token renewals by status",
		},
		[]string{"status"},
	)
)

func BackendRequestInc(channel, operation string) {
	BackendRequests.WithLabelValues(channel, operation).Inc()
}

func BackendRequestDuration(channel, operation string, duration time.Duration) {
	BackendDuration.WithLabelValues(channel, operation).Observe(duration.Seconds())
}

func BackendRequestError(channel, operation string, kind pkgmercury.ErrorKind) {
	BackendErrors.WithLabelValues(channel, operation, string(kind)).Inc()
}

func TokenRenewalInc(status string) {
	TokenRenewals.WithLabelValues(status).Inc()
}
