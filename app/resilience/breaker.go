package resilience

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// NewBreaker opens after the given number of consecutive failures and lets a
// single probe through once timeout has passed.
func NewBreaker[T any](name string, failures uint32, timeout time.Duration, logger *slog.Logger) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}
