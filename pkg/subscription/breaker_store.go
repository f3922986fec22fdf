package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit breaker placed in front of a Store.
type BreakerConfig struct {
	Enabled          bool          `env:"STORE_BREAKER_ENABLED" envDefault:"true"`        // Enabled wraps the store with a circuit breaker.
	MaxRequests      uint32        `env:"STORE_BREAKER_MAX_REQUESTS" envDefault:"1"`      // MaxRequests allowed through while half-open.
	Interval         time.Duration `env:"STORE_BREAKER_INTERVAL" envDefault:"60s"`        // Interval is the cyclic period of the closed state for clearing counts.
	Timeout          time.Duration `env:"STORE_BREAKER_TIMEOUT" envDefault:"30s"`         // Timeout is how long the breaker stays open.
	FailureThreshold uint32        `env:"STORE_BREAKER_FAILURE_THRESHOLD" envDefault:"5"` // FailureThreshold is the number of consecutive failures that trips the breaker.
}

type breakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next with a circuit breaker. When cfg.Enabled is false
// next is returned unchanged. Not-found results are not counted as failures.
// While the breaker is open, calls fail with ErrStoreUnavailable.
func NewBreakerStore(next Store, cfg BreakerConfig, log *slog.Logger) Store {
	if next == nil {
		panic("subscription: Store is required")
	}
	if !cfg.Enabled {
		return next
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	threshold := max(cfg.FailureThreshold, 1)

	settings := gobreaker.Settings{
		Name:        "subscription-store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrSubscriptionNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &breakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (b *breakerStore) Insert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	return execute(b.cb, func() (*Subscription, error) { return b.next.Insert(ctx, sub) })
}

func (b *breakerStore) FindByID(ctx context.Context, id string) (*Subscription, error) {
	return execute(b.cb, func() (*Subscription, error) { return b.next.FindByID(ctx, id) })
}

func (b *breakerStore) FindMany(ctx context.Context, filter Filter) ([]*Subscription, error) {
	return execute(b.cb, func() ([]*Subscription, error) { return b.next.FindMany(ctx, filter) })
}

func (b *breakerStore) Save(ctx context.Context, sub *Subscription) (*Subscription, error) {
	return execute(b.cb, func() (*Subscription, error) { return b.next.Save(ctx, sub) })
}

func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	var zero T
	res, err := cb.Execute(func() (any, error) { return fn() })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, errors.Join(ErrStoreUnavailable, err)
	}
	if err != nil {
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}
