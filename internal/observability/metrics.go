// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodbridge_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ClaimAttempts counts claim attempts by outcome.
	ClaimAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodbridge_claim_attempts_total",
		Help: "Total number of food item claim attempts by outcome",
	}, []string{"outcome"})

	// PickupAttempts counts pickup attempts by outcome.
	PickupAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodbridge_pickup_attempts_total",
		Help: "Total number of food item pickup attempts by outcome",
	}, []string{"outcome"})

	// AuthFailures counts rejected bearer tokens by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodbridge_auth_failures_total",
		Help: "Total number of rejected authentication attempts by reason",
	}, []string{"reason"})

	// SessionsIssued counts bearer tokens handed out at login.
	SessionsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodbridge_sessions_issued_total",
		Help: "Total number of session tokens issued",
	})
)

// Outcome labels for ClaimAttempts and PickupAttempts.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)
