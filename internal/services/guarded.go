package services

import (
	"context"
	"net/http"

	"storefront-bff/internal/resilience"
)

// GuardedClient runs shop API calls through a circuit breaker. Only
// transport errors and 5xx answers count as breaker failures; client errors
// such as 403 or 404 are returned untouched.
type GuardedClient struct {
	next    *ShopClient
	breaker *resilience.CircuitBreaker
}

func NewGuardedClient(next *ShopClient, breaker *resilience.CircuitBreaker) *GuardedClient {
	return &GuardedClient{next: next, breaker: breaker}
}

func (g *GuardedClient) GetData(ctx context.Context, path string, target any) error {
	var callErr error
	if err := g.breaker.Execute(func() error {
		callErr = g.next.GetData(ctx, path, target)
		return breakerFailure(callErr)
	}); err != nil {
		return err
	}
	return callErr
}

func (g *GuardedClient) PostData(ctx context.Context, path string, body any, target any) (int, error) {
	var (
		status  int
		callErr error
	)
	if err := g.breaker.Execute(func() error {
		status, callErr = g.next.PostData(ctx, path, body, target)
		return breakerFailure(callErr)
	}); err != nil {
		return status, err
	}
	return status, callErr
}

func breakerFailure(err error) error {
	if err == nil {
		return nil
	}
	if status := StatusOf(err); status != 0 && status < http.StatusInternalServerError {
		return nil
	}
	return err
}
