package middleware_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/officegen/internal/config"
	"github.com/vancomm/officegen/internal/middleware"
)

func newCookies(t *testing.T) *config.Cookies {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	j := config.NewJWTWithKeys(key, &key.PublicKey)
	return config.NewCookiesWith("localhost", false, http.SameSiteLaxMode, j)
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := middleware.Wrap(http.NotFoundHandler(), mark("inner"), mark("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestAuth(t *testing.T) {
	cookies := newCookies(t)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	var got *config.PlayerClaims
	var loggedIn bool
	h := middleware.Auth(logger, cookies)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			got, loggedIn = middleware.PlayerClaims(r.Context())
		},
	))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, loggedIn)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, config.NewPlayerClaims(3, "bob")))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.True(t, loggedIn)
	assert.Equal(t, int64(3), got.PlayerID)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "auth", Value: "garbage"})
	r.AddCookie(&http.Cookie{Name: "sign", Value: "garbage"})
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.False(t, loggedIn)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.Logging(logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/layout?size=3", nil))

	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "method=POST")
	assert.Contains(t, buf.String(), `uri="/layout?size=3"`)
}

func TestCors(t *testing.T) {
	h := middleware.Cors("https://office.example")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	))

	r := httptest.NewRequest(http.MethodGet, "/layouts", nil)
	r.Header.Set("Origin", "https://office.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "https://office.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	r = httptest.NewRequest(http.MethodGet, "/layouts", nil)
	r.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
