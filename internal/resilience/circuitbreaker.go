package resilience

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// ErrOpen is returned without calling the action while the breaker is open.
var ErrOpen = gobreaker.ErrOpenState

// CircuitBreaker opens after threshold consecutive failures and lets a single
// trial request through once timeout has passed.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[struct{}]
}

func NewCircuitBreaker(name string, threshold uint32, timeout time.Duration) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				slog.Warn("Circuit Breaker OPENED", "breaker", name, "from", from.String())
			} else {
				slog.Info("Circuit Breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			}
			breakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}
	breakerState.WithLabelValues(name).Set(0)

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

func (c *CircuitBreaker) Execute(action func() error) error {
	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, action()
	})
	if errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
