package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-bff/internal/auth"
	"storefront-bff/internal/services"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// shopSession forwards the browser's cookies, minus the BFF's own, to the
// shop API for the duration of the request.
func shopSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cookies []*http.Cookie
		for _, c := range r.Cookies() {
			if c.Name != auth.CookieName {
				cookies = append(cookies, c)
			}
		}
		sess := services.NewSession(cookies)
		next.ServeHTTP(w, r.WithContext(services.WithSession(r.Context(), sess)))
	})
}

// relayCookies passes cookies set by the shop API on to the browser. It
// must run before the status line is written.
func relayCookies(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFrom(r.Context())
	if sess == nil {
		return
	}
	for _, c := range sess.Issued() {
		http.SetCookie(w, c)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("JSON marshal error", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal", "Internal Server Error")
		return
	}
	h.writeRaw(w, r, status, data)
}

func (h *Handler) writeRaw(w http.ResponseWriter, r *http.Request, status int, data []byte) {
	relayCookies(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	data, _ := json.Marshal(errorBody{Error: errorDetail{Code: code, Message: message}})
	h.writeRaw(w, r, status, data)
}
