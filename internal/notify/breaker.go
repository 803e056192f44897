package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit wrapped around a sink.
type BreakerConfig struct {
	// FailureThreshold is the consecutive failure count that opens the circuit.
	FailureThreshold uint32
	// Cooldown is how long the circuit stays open before probing again.
	Cooldown time.Duration
}

// BreakerSink stops calling a failing sink until the cooldown elapses.
// While open, Notify returns gobreaker.ErrOpenState without calling through.
type BreakerSink struct {
	next    Sink
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSink(next Sink, cfg BreakerConfig, logger *slog.Logger) *BreakerSink {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("notification circuit state changed",
				"sink", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &BreakerSink{next: next, breaker: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

func (s *BreakerSink) Notify(ctx context.Context, n Notification) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Notify(ctx, n)
	})
	return err
}

func (s *BreakerSink) Name() string { return s.next.Name() }
