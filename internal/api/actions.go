package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront-bff/internal/auth"
	"storefront-bff/internal/pages"
)

var errBadRequest = errors.New("bad request")

// actionFunc decodes a page state from body, runs one action on it and
// returns the updated state.
type actionFunc func(ctx context.Context, r *http.Request, body io.Reader) (any, pages.Effect, error)

func stateAction[S any](newState func() *S, run func(ctx context.Context, r *http.Request, s *S) (pages.Effect, error)) actionFunc {
	return func(ctx context.Context, r *http.Request, body io.Reader) (any, pages.Effect, error) {
		s := newState()
		if err := json.NewDecoder(body).Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, pages.Effect{}, fmt.Errorf("%w: decode page state: %v", errBadRequest, err)
		}
		eff, err := run(ctx, r, s)
		if err != nil {
			return nil, pages.Effect{}, err
		}
		return s, eff, nil
	}
}

func newState[S any]() *S { return new(S) }

// action is one registered page action. Only upstream actions count
// against the rate limit; the rest only edit the posted state.
type action struct {
	run      actionFunc
	upstream bool
}

func upstream(run actionFunc) action { return action{run: run, upstream: true} }

func local(run actionFunc) action { return action{run: run} }

func (h *Handler) registerActions() map[string]map[string]action {
	return map[string]map[string]action{
		"cart": {
			"submit-basket": upstream(stateAction(newState[pages.CartPage], func(ctx context.Context, _ *http.Request, p *pages.CartPage) (pages.Effect, error) {
				return p.SubmitBasket(ctx, h.shop), nil
			})),
			"go-login": local(stateAction(newState[pages.CartPage], func(_ context.Context, _ *http.Request, p *pages.CartPage) (pages.Effect, error) {
				return p.GoLogin(), nil
			})),
		},
		"order": {
			"confirm": upstream(stateAction(pages.NewOrderPage, func(ctx context.Context, _ *http.Request, p *pages.OrderPage) (pages.Effect, error) {
				return p.ConfirmOrder(ctx, h.shop), nil
			})),
			"auth": upstream(stateAction(pages.NewOrderPage, func(ctx context.Context, _ *http.Request, p *pages.OrderPage) (pages.Effect, error) {
				return p.Auth(ctx, h.shop), nil
			})),
		},
		"payment": {
			"submit": upstream(stateAction(newState[pages.PaymentPage], func(ctx context.Context, _ *http.Request, p *pages.PaymentPage) (pages.Effect, error) {
				return p.SubmitPayment(ctx, h.shop), nil
			})),
		},
		"product": {
			"submit-review": upstream(stateAction(pages.NewProductPage, func(ctx context.Context, _ *http.Request, p *pages.ProductPage) (pages.Effect, error) {
				return p.SubmitReview(ctx, h.shop), nil
			})),
			"change-count": local(stateAction(pages.NewProductPage, func(_ context.Context, r *http.Request, p *pages.ProductPage) (pages.Effect, error) {
				delta, err := queryInt(r, "delta")
				if err != nil {
					return pages.Effect{}, err
				}
				p.ChangeCount(delta)
				return pages.Effect{Outcome: pages.OutcomeSucceeded}, nil
			})),
			"set-active-photo": local(stateAction(pages.NewProductPage, func(_ context.Context, r *http.Request, p *pages.ProductPage) (pages.Effect, error) {
				index, err := queryInt(r, "index")
				if err != nil {
					return pages.Effect{}, err
				}
				p.SetActivePhoto(index)
				return pages.Effect{Outcome: pages.OutcomeSucceeded}, nil
			})),
		},
		"profile": {
			"change-profile": upstream(stateAction(newState[pages.ProfilePage], func(ctx context.Context, _ *http.Request, p *pages.ProfilePage) (pages.Effect, error) {
				return p.ChangeProfile(ctx, h.shop), nil
			})),
			"change-password": upstream(stateAction(newState[pages.ProfilePage], func(ctx context.Context, _ *http.Request, p *pages.ProfilePage) (pages.Effect, error) {
				return p.ChangePassword(ctx, h.shop), nil
			})),
			"clear-avatar": local(stateAction(newState[pages.ProfilePage], func(_ context.Context, _ *http.Request, p *pages.ProfilePage) (pages.Effect, error) {
				p.ClearAvatar()
				return pages.Effect{Outcome: pages.OutcomeSucceeded}, nil
			})),
		},
		"sign-in": {
			"sign-in": upstream(stateAction(newState[pages.SignInPage], func(ctx context.Context, _ *http.Request, p *pages.SignInPage) (pages.Effect, error) {
				return p.SignIn(ctx, h.shop), nil
			})),
		},
		"sign-up": {
			"sign-up": upstream(stateAction(newState[pages.SignUpPage], func(ctx context.Context, _ *http.Request, p *pages.SignUpPage) (pages.Effect, error) {
				return p.SignUp(ctx, h.shop), nil
			})),
		},
		"account": {
			"sign-out": upstream(stateAction(newState[pages.AccountPage], func(ctx context.Context, _ *http.Request, p *pages.AccountPage) (pages.Effect, error) {
				return p.SignOut(ctx, h.shop), nil
			})),
		},
	}
}

// RunAction handles POST /bff/pages/{page}/{action}.
func (h *Handler) RunAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, name := chi.URLParam(r, "page"), chi.URLParam(r, "action")

	act, ok := h.actions[page][name]
	if !ok {
		h.writeError(w, r, http.StatusNotFound, "not_found", fmt.Sprintf("unknown action %s/%s", page, name))
		return
	}

	if act.upstream {
		ip := clientIP(r)
		if h.cache.IsRateLimited(ctx, ip, h.cfg.RateLimitMax, h.cfg.RateLimitWindow) {
			slog.Warn("Rate limit exceeded", "ip", ip)
			h.writeError(w, r, http.StatusTooManyRequests, "rate_limited", "Too many requests")
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxStateBytes)
	state, eff, err := act.run(ctx, r, body)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	slog.Info("Page action", "page", page, "action", name, "outcome", eff.Outcome, "session", auth.SessionID(ctx))
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: state, Effect: eff})
}

func queryInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be an integer", errBadRequest, name)
	}
	return v, nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
