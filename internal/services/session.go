package services

import (
	"context"
	"net/http"
	"sync"
)

type sessionKey struct{}

// Session carries the browser's cookies to the shop API and collects the
// cookies the shop API sets, so they can be relayed back to the browser.
type Session struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
	issued  []*http.Cookie
}

func NewSession(cookies []*http.Cookie) *Session {
	s := &Session{cookies: make(map[string]*http.Cookie, len(cookies))}
	for _, c := range cookies {
		s.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return s
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

func (s *Session) Cookie(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cookies[name]; ok {
		return c.Value
	}
	return ""
}

func (s *Session) Cookies() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Cookie, 0, len(s.cookies))
	for _, c := range s.cookies {
		out = append(out, c)
	}
	return out
}

// Store records cookies set by the shop API. Later calls in the same request
// see them; expired cookies are dropped.
func (s *Session) Store(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cookies {
		s.issued = append(s.issued, c)
		if c.MaxAge < 0 || c.Value == "" {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
}

// Issued returns every cookie the shop API set during this session.
func (s *Session) Issued() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Cookie(nil), s.issued...)
}
