package main

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-bff/internal/models"
)

type account struct {
	password string
	profile  models.Profile
	orders   []int
}

// store is the stub's whole state: catalog, accounts, sessions and orders.
type store struct {
	mu       sync.Mutex
	products map[int]*models.Product
	accounts map[string]*account
	sessions map[string]string
	orders   map[int]*models.Order
	// baskets are keyed by shop session, anonymous visitors included.
	baskets map[string]map[int]int
	nextID  int
}

func newStore() *store {
	s := &store{
		products: map[int]*models.Product{},
		accounts: map[string]*account{},
		sessions: map[string]string{},
		orders:   map[int]*models.Order{},
		baskets:  map[string]map[int]int{},
		nextID:   1,
	}

	for i, title := range []string{"Desk lamp", "Mechanical keyboard", "USB-C cable", "Monitor stand"} {
		id := i + 1
		s.products[id] = &models.Product{
			ID:              id,
			Category:        1,
			Price:           models.Decimal("19.99"),
			Count:           10,
			Date:            "2024-01-15T10:00:00Z",
			Title:           title,
			Description:     title + " for everyday use",
			FullDescription: title + " for everyday use. Ships in two days.",
			FreeDelivery:    id%2 == 0,
			Images:          []models.Image{{Src: "/static/products/" + title + ".png", Alt: title}},
			Tags:            []models.Tag{{ID: 1, Name: "office"}},
			Reviews:         []models.Review{},
			Specifications:  []models.Specification{{Name: "Warranty", Value: "1 year"}},
		}
	}

	s.accounts["demo"] = &account{
		password: "demo",
		profile:  models.Profile{FullName: "Demo User", Phone: "+10000000000", Email: "demo@example.com"},
	}
	return s
}

func (s *store) card(p *models.Product) models.ProductCard {
	return models.ProductCard{
		ID:           p.ID,
		Category:     p.Category,
		Price:        p.Price,
		Count:        p.Count,
		Date:         p.Date,
		Title:        p.Title,
		Description:  p.Description,
		FreeDelivery: p.FreeDelivery,
		Images:       p.Images,
		Tags:         p.Tags,
		Reviews:      len(p.Reviews),
		Rating:       p.Rating,
	}
}

func (s *store) cards(pick func(*models.Product) bool) []models.ProductCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ProductCard{}
	for id := 1; id <= len(s.products); id++ {
		if p, ok := s.products[id]; ok && pick(p) {
			out = append(out, s.card(p))
		}
	}
	return out
}

func (s *store) product(id int) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, false
	}
	return *p, true
}

func (s *store) addReview(id int, r models.Review) ([]models.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	r.Date = time.Now().UTC().Format("2006-01-02 15:04")
	p.Reviews = append(p.Reviews, r)
	return append([]models.Review(nil), p.Reviews...), true
}

// signIn returns a new session id for valid credentials.
func (s *store) signIn(username, password string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[username]
	if !ok || acc.password != password {
		return "", false
	}
	sid := uuid.NewString()
	s.sessions[sid] = username
	return sid, true
}

func (s *store) signUp(name, username, password string) (string, bool) {
	s.mu.Lock()
	if _, exists := s.accounts[username]; exists {
		s.mu.Unlock()
		return "", false
	}
	s.accounts[username] = &account{password: password, profile: models.Profile{FullName: name}}
	s.mu.Unlock()
	return s.signIn(username, password)
}

func (s *store) signOut(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

func (s *store) user(sid string) (*account, bool) {
	username, ok := s.sessions[sid]
	if !ok {
		return nil, false
	}
	acc, ok := s.accounts[username]
	return acc, ok
}

// withAccount runs fn under the store lock for the account owning sid.
func (s *store) withAccount(sid string, fn func(acc *account)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.user(sid)
	if !ok {
		return false
	}
	fn(acc)
	return true
}

func (s *store) createOrder(acc *account, items []models.OrderedProduct) int {
	id := s.nextID
	s.nextID++

	total := 0.0
	for _, item := range items {
		price, _ := strconv.ParseFloat(string(item.Price), 64)
		total += price * float64(item.Count)
	}

	var (
		created  = time.Now().UTC().Format("2006-01-02 15:04")
		status   = "accepted"
		paid     = false
		fullName = acc.profile.FullName
		email    = acc.profile.Email
		phone    = acc.profile.Phone
	)
	s.orders[id] = &models.Order{
		ID:           &id,
		CreatedAt:    &created,
		FullName:     &fullName,
		Email:        &email,
		Phone:        &phone,
		Status:       &status,
		TotalCost:    models.Decimal(strconv.FormatFloat(total, 'f', 2, 64)),
		DeliveryCost: models.Decimal("0"),
		Paid:         &paid,
		Products:     items,
	}
	acc.orders = append(acc.orders, id)
	return id
}

func (s *store) basketLines(sid string) []models.ProductCard {
	lines := []models.ProductCard{}
	basket := s.baskets[sid]
	for id := 1; id <= len(s.products); id++ {
		count, ok := basket[id]
		if !ok {
			continue
		}
		line := s.card(s.products[id])
		line.Count = count
		lines = append(lines, line)
	}
	return lines
}

func (s *store) basket(sid string) []models.ProductCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basketLines(sid)
}

// addToBasket reports false for an unknown product.
func (s *store) addToBasket(sid string, id, count int) ([]models.ProductCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return nil, false
	}
	if s.baskets[sid] == nil {
		s.baskets[sid] = map[int]int{}
	}
	s.baskets[sid][id] += count
	return s.basketLines(sid), true
}

func (s *store) removeFromBasket(sid string, id, count int) []models.ProductCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if basket := s.baskets[sid]; basket != nil {
		basket[id] -= count
		if basket[id] <= 0 {
			delete(basket, id)
		}
	}
	return s.basketLines(sid)
}

// moveBasket hands an anonymous basket over to the session opened at sign-in.
func (s *store) moveBasket(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if basket, ok := s.baskets[from]; ok && from != to {
		s.baskets[to] = basket
		delete(s.baskets, from)
	}
}

func (s *store) clearBasket(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.baskets, sid)
}
