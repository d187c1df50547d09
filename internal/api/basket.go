package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-bff/internal/models"
	"storefront-bff/internal/services"
)

// The basket lives in the shop API, tied to the shop session (anonymous
// visitors included), so order creation and /bff/basket always agree.
const shopBasketPath = "/api/basket/"

type basketResponse struct {
	Basket models.Basket `json:"basket"`
	Empty  bool          `json:"empty"`
}

func (h *Handler) GetBasket(w http.ResponseWriter, r *http.Request) {
	var items []json.RawMessage
	if err := h.shop.GetData(r.Context(), shopBasketPath, &items); err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	h.writeBasket(w, r, items)
}

// AddToBasket adds count units of product id: body {"id", "count"}.
func (h *Handler) AddToBasket(w http.ResponseWriter, r *http.Request) {
	line, ok := h.decodeLine(w, r)
	if !ok {
		return
	}

	var items []json.RawMessage
	if _, err := h.shop.PostData(r.Context(), shopBasketPath, line, &items); err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	h.writeBasket(w, r, items)
}

// RemoveFromBasket removes count units of product id: body {"id", "count"}.
func (h *Handler) RemoveFromBasket(w http.ResponseWriter, r *http.Request) {
	line, ok := h.decodeLine(w, r)
	if !ok {
		return
	}

	var items []json.RawMessage
	if err := h.shop.DeleteData(r.Context(), shopBasketPath, line, &items); err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	h.writeBasket(w, r, items)
}

func (h *Handler) decodeLine(w http.ResponseWriter, r *http.Request) (models.BasketLine, bool) {
	var line models.BasketLine
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.MaxStateBytes)).Decode(&line); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", "invalid basket line")
		return line, false
	}
	if line.ID <= 0 || line.Count <= 0 {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", "id and count must be positive")
		return line, false
	}
	return line, true
}

func (h *Handler) writeBasket(w http.ResponseWriter, r *http.Request, items []json.RawMessage) {
	basket, err := models.BasketFromItems(items)
	if err != nil {
		slog.Error("Malformed shop basket", "error", err)
		h.writeError(w, r, http.StatusBadGateway, "upstream", "malformed basket from shop")
		return
	}
	h.writeJSON(w, r, http.StatusOK, basketResponse{Basket: basket, Empty: basket.IsEmpty()})
}

// writeUpstreamError passes a shop API rejection on with its status; a shop
// that could not be reached is a 502.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.StatusOf(err)
	if status == 0 {
		status = http.StatusBadGateway
	}
	slog.Warn("Basket call failed", "status", status, "error", err)
	h.writeError(w, r, status, "upstream", services.Payload(err))
}
