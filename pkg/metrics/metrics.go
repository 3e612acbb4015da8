package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "modelgate"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	TokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "tokens_issued_total", Help: "Number of access tokens issued."},
	)
	// AccessDenied reasons: forbidden, missing_token, invalid_token.
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "access_denied_total", Help: "Number of rejected validation or authentication attempts by reason."},
		[]string{"reason"},
	)
	ResourceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "resource_requests_total", Help: "Resource operations by kind, operation and outcome."},
		[]string{"kind", "op", "outcome"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "Duration of HTTP requests.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
)

// RegisterCollectors registers every collector with reg. Call once per registry.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(TokensIssued)
	reg.MustRegister(AccessDenied)
	reg.MustRegister(ResourceRequests)
	reg.MustRegister(HTTPDuration)
}
