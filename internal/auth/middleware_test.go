package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func captureSession(t *testing.T, m *Middleware, r *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var got string
	h := m.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionID(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return got, rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestSession_IssuesWhenMissing(t *testing.T) {
	m := NewMiddleware(testSecret, time.Hour, false)

	id, rec := captureSession(t, m, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, id)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 3600, c.MaxAge)

	parsed, err := m.Parse(c.Value)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSession_ReusesValidCookie(t *testing.T) {
	m := NewMiddleware(testSecret, time.Hour, false)
	token, err := m.Sign("s-1", time.Now())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	id, rec := captureSession(t, m, r)

	assert.Equal(t, "s-1", id)
	assert.Nil(t, sessionCookie(rec))
}

func TestSession_AcceptsBearer(t *testing.T) {
	m := NewMiddleware(testSecret, time.Hour, false)
	token, err := m.Sign("s-2", time.Now())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	id, _ := captureSession(t, m, r)

	assert.Equal(t, "s-2", id)
}

func TestSession_ReplacesExpiredToken(t *testing.T) {
	m := NewMiddleware(testSecret, time.Hour, false)
	token, err := m.Sign("old", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	id, rec := captureSession(t, m, r)

	assert.NotEqual(t, "old", id)
	assert.NotNil(t, sessionCookie(rec))
}

func TestParse_RejectsForeignSecretAndAlgorithm(t *testing.T) {
	m := NewMiddleware(testSecret, time.Hour, false)

	other, err := NewMiddleware("other", time.Hour, false).Sign("s", time.Now())
	require.NoError(t, err)
	_, err = m.Parse(other)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "s"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(unsigned)
	assert.Error(t, err)
}

func TestParse_RejectsMissingSubject(t *testing.T) {
	m := NewMiddleware(testSecret, time.Hour, false)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestSessionID_EmptyWithoutMiddleware(t *testing.T) {
	assert.Empty(t, SessionID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
