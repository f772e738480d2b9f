package providers

import (
	"context"
	"errors"
	"fmt"
	"resultsd/internal/models"
	"time"

	"github.com/sony/gobreaker/v2"
)

// StoreGuardInterface runs document store calls behind a circuit breaker.
// Store failures come back wrapped in models.ErrStoreUnavailable; expected
// outcomes such as not-found pass through untouched.
type StoreGuardInterface interface {
	Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error
}

type StoreGuard struct {
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics MetricsProviderInterface
}

func NewStoreGuard(logger Logger, metrics MetricsProviderInterface) StoreGuardInterface {
	settings := gobreaker.Settings{
		Name:        "document-store",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf(TypeApp, "Circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || models.IsDomainError(err) || errors.Is(err, context.Canceled)
		},
	}
	return &StoreGuard{
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		metrics: metrics,
	}
}

func (g *StoreGuard) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	_, err := g.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	g.metrics.ObserveStoreDuration(operation, time.Since(start))

	if err == nil || models.IsDomainError(err) || errors.Is(err, context.Canceled) {
		return err
	}
	// Covers driver failures as well as gobreaker.ErrOpenState and ErrTooManyRequests.
	return fmt.Errorf("%w: %s: %v", models.ErrStoreUnavailable, operation, err)
}
