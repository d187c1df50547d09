package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the BFF's own session cookie. It keys server-side state such
// as the basket and is separate from the shop API's cookies.
const CookieName = "bff_session"

type ctxKey struct{}

type Middleware struct {
	secretKey []byte
	ttl       time.Duration
	secure    bool
}

func NewMiddleware(secret string, ttl time.Duration, secure bool) *Middleware {
	return &Middleware{
		secretKey: []byte(secret),
		ttl:       ttl,
		secure:    secure,
	}
}

// Session makes sure every request carries a session id. A valid token is
// taken from the session cookie or a Bearer header; otherwise a fresh
// session is issued and set as a cookie.
func (m *Middleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := m.fromRequest(r)
		if err != nil {
			sessionID, err = m.issue(w)
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to issue session", "error", err)
				http.Error(w, `{"error":{"code":"session","message":"cannot start session"}}`, http.StatusInternalServerError)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
	})
}

func (m *Middleware) fromRequest(r *http.Request) (string, error) {
	tokenString := ""
	if c, err := r.Cookie(CookieName); err == nil {
		tokenString = c.Value
	} else if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fmt.Errorf("invalid Authorization header format")
		}
		tokenString = parts[1]
	}
	if tokenString == "" {
		return "", fmt.Errorf("no session token")
	}

	sessionID, err := m.Parse(tokenString)
	if err != nil {
		slog.Warn("Invalid session token", "error", err)
		return "", err
	}
	return sessionID, nil
}

func (m *Middleware) issue(w http.ResponseWriter) (string, error) {
	sessionID := uuid.NewString()
	token, err := m.Sign(sessionID, time.Now())
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID, nil
}

// Sign returns an HS256 token for sessionID valid from now for the
// configured TTL.
func (m *Middleware) Sign(sessionID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenString and returns its session id.
func (m *Middleware) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token has no session")
	}
	return claims.Subject, nil
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// SessionID returns the session id stored by Session, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
