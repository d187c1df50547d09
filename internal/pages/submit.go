package pages

import (
	"context"
	"encoding/json"
)

// Ignored discards a response body of any shape.
type Ignored = json.RawMessage

// Submission is one page action that posts the page state to the shop API.
// S is the page state, R the decoded response body.
type Submission[S, R any] struct {
	Name string

	// Endpoint resolves the POST path; false makes the action a no-op.
	Endpoint func(s *S) (string, bool)

	// Validate runs before any network call. A non-nil error shows
	// InvalidAlert and stops the action.
	Validate     func(s *S) error
	InvalidAlert string

	Body      func(s *S) any
	OnSuccess func(s *S, resp R) Effect

	Failure failure
}

// Run drives one invocation: validating, submitting, then succeeded or
// failed. Nothing prevents a second Run on the same state while the first
// is in flight.
func (d Submission[S, R]) Run(ctx context.Context, api ShopAPI, s *S) Effect {
	path, ok := d.Endpoint(s)
	if !ok {
		return record(d.Name, Effect{Outcome: OutcomeSkipped})
	}

	if d.Validate != nil {
		if err := d.Validate(s); err != nil {
			return record(d.Name, Effect{Outcome: OutcomeInvalid, Alert: d.InvalidAlert})
		}
	}

	var resp R
	if _, err := api.PostData(ctx, path, d.Body(s), &resp); err != nil {
		return record(d.Name, d.Failure.effect(ctx, d.Name, err))
	}

	eff := succeeded()
	if d.OnSuccess != nil {
		eff = d.OnSuccess(s, resp)
		eff.Outcome = OutcomeSucceeded
	}
	return record(d.Name, eff)
}

func fixedPath[S any](path string) func(*S) (string, bool) {
	return func(*S) (string, bool) { return path, true }
}
