package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-bff/internal/auth"
	"storefront-bff/internal/telemetry"
)

// Routes builds the BFF router. Page and basket routes run inside a BFF
// session and forward the browser's shop cookies.
func (h *Handler) Routes(session *auth.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(telemetry.Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Route("/bff", func(r chi.Router) {
		r.Use(chimw.Timeout(2 * h.cfg.UpstreamTimeout))
		r.Use(session.Session)
		r.Use(shopSession)

		r.Get("/pages/index", h.GetIndex)
		r.Get("/pages/history", h.GetHistory)
		r.Get("/pages/account", h.GetAccount)
		r.Get("/pages/profile", h.GetProfile)
		r.Get("/pages/product", h.GetProduct)
		r.Get("/pages/order", h.GetOrder)
		r.Post("/pages/profile/avatar", h.UploadAvatar)
		r.Post("/pages/{page}/{action}", h.RunAction)

		r.Get("/basket", h.GetBasket)
		r.Post("/basket", h.AddToBasket)
		r.Delete("/basket", h.RemoveFromBasket)
	})

	return r
}
