package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"storefront-bff/internal/cache"
	"storefront-bff/internal/config"
	"storefront-bff/internal/pages"
	"storefront-bff/internal/services"
)

const indexCacheKey = "page:index"

// ShopAPI is the shop client the handlers need: the page calls plus the
// basket removal.
type ShopAPI interface {
	pages.ShopAPI
	DeleteData(ctx context.Context, path string, body any, target any) error
}

type Handler struct {
	shop    ShopAPI
	catalog pages.ShopAPI
	cache   *cache.Client
	cfg     *config.Config
	actions map[string]map[string]action
}

// NewHandler serves the page endpoints. shop is used for everything except
// the index catalog strips, which go through catalog.
func NewHandler(shop ShopAPI, catalog pages.ShopAPI, cache *cache.Client, cfg *config.Config) *Handler {
	h := &Handler{
		shop:    shop,
		catalog: catalog,
		cache:   cache,
		cfg:     cfg,
	}
	h.actions = h.registerActions()
	return h
}

type pageResponse struct {
	State  any          `json:"state"`
	Effect pages.Effect `json:"effect"`
}

func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	cachedData, err := h.cache.Get(ctx, indexCacheKey)
	if err == nil {
		slog.Info("Cache HIT", "key", indexCacheKey, "duration", time.Since(start))
		h.writeRaw(w, r, http.StatusOK, cachedData)
		return
	}

	page := pages.NewIndexPage()
	eff := page.Mount(ctx, h.catalog)

	responseBytes, err := json.Marshal(pageResponse{State: page, Effect: eff})
	if err != nil {
		slog.Error("JSON marshal error", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal", "Internal Server Error")
		return
	}

	if eff.Outcome == pages.OutcomeSucceeded {
		go func() {
			if err := h.cache.Set(context.Background(), indexCacheKey, responseBytes, h.cfg.IndexCacheTTL); err != nil {
				slog.Warn("Index cache write failed", "error", err)
			}
		}()
	}

	slog.Info("Request processed", "page", "index", "outcome", eff.Outcome, "duration", time.Since(start))
	h.writeRaw(w, r, http.StatusOK, responseBytes)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	page := pages.NewHistoryPage()
	eff := page.Mount(r.Context(), h.shop)
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	page := &pages.AccountPage{}
	eff := page.Mount(r.Context(), h.shop)
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	page := &pages.ProfilePage{}
	eff := page.Mount(r.Context(), h.shop)
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
}

// GetProduct mounts the product page for the location given in ?path=.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	page := pages.NewProductPage()
	eff := page.Mount(r.Context(), h.shop, r.URL.Query().Get("path"))
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
}

// GetOrder mounts the order page for the location given in ?path=.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	page := pages.NewOrderPage()
	eff := page.Mount(r.Context(), h.shop, r.URL.Query().Get("path"))
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
}

// UploadAvatar takes a multipart form with an "avatar" file and an optional
// "state" field holding the profile page state. An unreadable upload is
// reported through the page like a refused one.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := &pages.ProfilePage{}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		eff := page.RejectAvatar(ctx, fmt.Errorf("read avatar upload: %w", err))
		h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
		return
	}

	if raw := r.FormValue("state"); raw != "" {
		if err := json.Unmarshal([]byte(raw), page); err != nil {
			h.writeError(w, r, http.StatusBadRequest, "bad_request", "invalid page state")
			return
		}
	}

	var upload *services.FormFile
	file, hdr, err := r.FormFile("avatar")
	switch {
	case err == nil:
		defer file.Close()
		upload = &services.FormFile{Field: "avatar", Filename: hdr.Filename, Content: file}
	case !errors.Is(err, http.ErrMissingFile):
		eff := page.RejectAvatar(ctx, fmt.Errorf("read avatar upload: %w", err))
		h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
		return
	}

	eff := page.SetAvatar(ctx, h.shop, upload)
	h.writeJSON(w, r, http.StatusOK, pageResponse{State: page, Effect: eff})
}
