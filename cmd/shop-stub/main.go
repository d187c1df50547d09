// Command shop-stub is an in-memory stand-in for the shop REST API, for
// running the BFF locally. Sign in as demo/demo.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"

	"storefront-bff/internal/models"
)

const sessionCookie = "sessionid"

type stubConfig struct {
	Port string `env:"STUB_PORT" envDefault:"8000"`
}

type server struct {
	store *store
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var cfg stubConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	srv := &server{store: newStore()}
	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Shop stub listening", "addr", addr)

	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/banners", s.banners)
	mux.HandleFunc("GET /api/products/popular/", s.popular)
	mux.HandleFunc("GET /api/products/limited/", s.limited)
	mux.HandleFunc("GET /api/product/{id}/", s.getProduct)
	mux.HandleFunc("POST /api/product/{id}/review/", s.postReview)

	mux.HandleFunc("GET /api/basket/", s.getBasket)
	mux.HandleFunc("POST /api/basket/", s.addToBasket)
	mux.HandleFunc("DELETE /api/basket/", s.removeFromBasket)

	mux.HandleFunc("POST /api/sign-in/", s.signIn)
	mux.HandleFunc("POST /api/sign-up/", s.signUp)
	mux.HandleFunc("POST /api/sign-out/", s.signOut)

	mux.HandleFunc("GET /api/profile/", s.getProfile)
	mux.HandleFunc("POST /api/profile/", s.postProfile)
	mux.HandleFunc("POST /api/profile/password/", s.postPassword)
	mux.HandleFunc("POST /api/profile/avatar/", s.postAvatar)

	mux.HandleFunc("GET /api/orders/", s.listOrders)
	mux.HandleFunc("POST /api/orders/", s.createOrder)
	mux.HandleFunc("GET /api/orders/{id}/", s.getOrder)
	mux.HandleFunc("POST /api/orders/{id}/", s.confirmOrder)
	mux.HandleFunc("POST /api/payment/{id}/", s.payment)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response", "error", err)
	}
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func forbidden(w http.ResponseWriter) {
	detail(w, http.StatusForbidden, "Authentication credentials were not provided.")
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		detail(w, http.StatusBadRequest, "Malformed request body.")
		return false
	}
	return true
}

func (s *server) banners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.cards(func(p *models.Product) bool { return p.ID == 1 }))
}

func (s *server) popular(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.cards(func(p *models.Product) bool { return true }))
}

func (s *server) limited(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.cards(func(p *models.Product) bool { return p.Count < 20 && p.FreeDelivery }))
}

func (s *server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		detail(w, http.StatusNotFound, "Not found.")
		return
	}
	p, ok := s.store.product(id)
	if !ok {
		detail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) postReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		detail(w, http.StatusNotFound, "Not found.")
		return
	}
	var review models.Review
	if !decode(w, r, &review) {
		return
	}
	if strings.TrimSpace(review.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"text": {"This field may not be blank."}})
		return
	}
	reviews, ok := s.store.addReview(id, review)
	if !ok {
		detail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusCreated, reviews)
}

// basketSession returns the caller's shop session, opening an anonymous one
// when there is none yet.
func basketSession(w http.ResponseWriter, r *http.Request) string {
	if sid := sessionID(r); sid != "" {
		return sid
	}
	sid := "anon-" + uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", HttpOnly: true})
	return sid
}

func (s *server) getBasket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.basket(basketSession(w, r)))
}

func (s *server) addToBasket(w http.ResponseWriter, r *http.Request) {
	var line models.BasketLine
	if !decode(w, r, &line) {
		return
	}
	if line.Count <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"count": {"Ensure this value is greater than or equal to 1."}})
		return
	}
	lines, ok := s.store.addToBasket(basketSession(w, r), line.ID, line.Count)
	if !ok {
		detail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (s *server) removeFromBasket(w http.ResponseWriter, r *http.Request) {
	var line models.BasketLine
	if !decode(w, r, &line) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.removeFromBasket(basketSession(w, r), line.ID, line.Count))
}

func startSession(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: strings.ReplaceAll(sid, "-", ""), Path: "/"})
}

func (s *server) signIn(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}
	sid, ok := s.store.signIn(creds.Username, creds.Password)
	if !ok {
		detail(w, http.StatusForbidden, "Invalid username or password.")
		return
	}
	s.store.moveBasket(sessionID(r), sid)
	startSession(w, sid)
	w.WriteHeader(http.StatusOK)
}

func (s *server) signUp(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if !decode(w, r, &reg) {
		return
	}
	sid, ok := s.store.signUp(reg.Name, reg.Username, reg.Password)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {"A user with that username already exists."}})
		return
	}
	s.store.moveBasket(sessionID(r), sid)
	startSession(w, sid)
	w.WriteHeader(http.StatusCreated)
}

func (s *server) signOut(w http.ResponseWriter, r *http.Request) {
	s.store.signOut(sessionID(r))
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusOK)
}

func (s *server) getProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if !s.store.withAccount(sessionID(r), func(acc *account) { profile = acc.profile }) {
		forbidden(w)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *server) postProfile(w http.ResponseWriter, r *http.Request) {
	var in models.Profile
	if !decode(w, r, &in) {
		return
	}
	var out models.Profile
	if !s.store.withAccount(sessionID(r), func(acc *account) {
		acc.profile.FullName, acc.profile.Phone, acc.profile.Email = in.FullName, in.Phone, in.Email
		out = acc.profile
	}) {
		forbidden(w)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) postPassword(w http.ResponseWriter, r *http.Request) {
	var in models.PasswordChange
	if !decode(w, r, &in) {
		return
	}
	if !s.store.withAccount(sessionID(r), func(acc *account) { acc.password = in.Password }) {
		forbidden(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *server) postAvatar(w http.ResponseWriter, r *http.Request) {
	file, hdr, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"avatar": {"No file was submitted."}})
		return
	}
	defer file.Close()
	_, _ = io.Copy(io.Discard, file)

	img := models.Image{Src: "/media/avatars/" + hdr.Filename, Alt: hdr.Filename}
	if !s.store.withAccount(sessionID(r), func(acc *account) { acc.profile.Avatar = &img }) {
		forbidden(w)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (s *server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := []models.Order{}
	if !s.store.withAccount(sessionID(r), func(acc *account) {
		for i := len(acc.orders) - 1; i >= 0; i-- {
			orders = append(orders, *s.store.orders[acc.orders[i]])
		}
	}) {
		forbidden(w)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *server) createOrder(w http.ResponseWriter, r *http.Request) {
	var items []models.OrderedProduct
	if !decode(w, r, &items) {
		return
	}
	if len(items) == 0 {
		detail(w, http.StatusBadRequest, "The basket is empty.")
		return
	}
	var id int
	if !s.store.withAccount(sessionID(r), func(acc *account) { id = s.store.createOrder(acc, items) }) {
		forbidden(w)
		return
	}
	s.store.clearBasket(sessionID(r))
	writeJSON(w, http.StatusCreated, models.CreatedOrder{OrderID: id})
}

// ownOrder runs fn on order id if it belongs to the session's account.
func (s *server) ownOrder(w http.ResponseWriter, r *http.Request, fn func(o *models.Order)) {
	id, ok := pathID(r)
	if !ok {
		detail(w, http.StatusNotFound, "Not found.")
		return
	}
	found := false
	if !s.store.withAccount(sessionID(r), func(acc *account) {
		for _, own := range acc.orders {
			if own == id {
				found = true
				fn(s.store.orders[id])
				return
			}
		}
	}) {
		forbidden(w)
		return
	}
	if !found {
		detail(w, http.StatusNotFound, "Not found.")
	}
}

func (s *server) getOrder(w http.ResponseWriter, r *http.Request) {
	s.ownOrder(w, r, func(o *models.Order) {
		writeJSON(w, http.StatusOK, *o)
	})
}

func (s *server) confirmOrder(w http.ResponseWriter, r *http.Request) {
	var in models.Order
	if !decode(w, r, &in) {
		return
	}
	s.ownOrder(w, r, func(o *models.Order) {
		o.FullName, o.Phone, o.Email = in.FullName, in.Phone, in.Email
		o.DeliveryType, o.City, o.Address = in.DeliveryType, in.City, in.Address
		o.Comment, o.PaymentType = in.Comment, in.PaymentType
		status := "confirmed"
		o.Status = &status
		writeJSON(w, http.StatusOK, *o)
	})
}

// payment declines card numbers ending in 0.
func (s *server) payment(w http.ResponseWriter, r *http.Request) {
	var in models.Payment
	if !decode(w, r, &in) {
		return
	}
	s.ownOrder(w, r, func(o *models.Order) {
		if in.Number == "" || strings.HasSuffix(in.Number, "0") {
			msg := "Payment declined"
			o.PaymentError = &msg
			detail(w, http.StatusBadRequest, msg)
			return
		}
		paid := true
		o.Paid, o.PaymentError = &paid, nil
		w.WriteHeader(http.StatusOK)
	})
}
