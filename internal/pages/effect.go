// Package pages holds the storefront page view-models. Every page is a plain
// state struct; lifecycle and action methods take the shop API explicitly and
// return an Effect telling the browser shell what to do next.
package pages

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"storefront-bff/internal/services"
	"storefront-bff/internal/telemetry"
)

const (
	HomePath   = "/"
	SignInPath = "/sign-in/"
)

// Outcome is the terminal state of one action invocation.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Effect is what the browser shell performs after an action: a full page
// navigation (Replace selects location.replace over location.assign), a
// blocking alert, and console warnings.
type Effect struct {
	Outcome  Outcome  `json:"outcome"`
	Navigate string   `json:"navigate,omitempty"`
	Replace  bool     `json:"replace,omitempty"`
	Alert    string   `json:"alert,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ShopAPI is the subset of the shop REST client the pages use.
type ShopAPI interface {
	GetData(ctx context.Context, path string, target any) error
	PostData(ctx context.Context, path string, body any, target any) (int, error)
}

// failure describes how an action reports a rejected call.
type failure struct {
	// warn and alert are fixed messages; empty means the raw server payload.
	warn  string
	alert string
	// quiet actions only warn.
	quiet bool
	// public actions do not send the user to sign-in on 403; they are the
	// credential forms where 403 means wrong credentials.
	public bool
}

func (f failure) effect(ctx context.Context, action string, err error) Effect {
	payload := services.Payload(err)
	status := services.StatusOf(err)

	slog.WarnContext(ctx, "page action failed",
		"action", action,
		"status", status,
		"error", err,
	)

	warn := f.warn
	if warn == "" {
		warn = payload
	}
	eff := Effect{Outcome: OutcomeFailed, Warnings: []string{warn}}

	if status == http.StatusForbidden && !f.public {
		eff.Navigate = SignInPath
		return eff
	}
	if f.quiet {
		return eff
	}

	eff.Alert = f.alert
	if eff.Alert == "" {
		eff.Alert = payload
	}
	return eff
}

func record(action string, eff Effect) Effect {
	telemetry.RecordPageOutcome(action, string(eff.Outcome))
	return eff
}

func succeeded() Effect {
	return Effect{Outcome: OutcomeSucceeded}
}

func navigate(path string) Effect {
	return Effect{Outcome: OutcomeSucceeded, Navigate: path}
}

func orderPath(id int) string {
	return fmt.Sprintf("/orders/%d/", id)
}

func orderDetailPath(id int) string {
	return fmt.Sprintf("/order-detail/%d/", id)
}

// merge folds the effects of independent bootstrap fetches into one: the
// first navigation and the first alert win, warnings accumulate.
func merge(effects ...Effect) Effect {
	out := Effect{Outcome: OutcomeSucceeded}
	for _, e := range effects {
		if e.Outcome == OutcomeFailed {
			out.Outcome = OutcomeFailed
		}
		if out.Navigate == "" && e.Navigate != "" {
			out.Navigate, out.Replace = e.Navigate, e.Replace
		}
		if out.Alert == "" {
			out.Alert = e.Alert
		}
		out.Warnings = append(out.Warnings, e.Warnings...)
	}
	return out
}
