package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-dashboard/internal/config"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

const secret = "test-secret"

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func token(t *testing.T, roles ...string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   7,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

// serve runs a single request through e.
func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(LoadSession(secret, quietLogger()))
	e.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, session.From(c).Email+"ok")
	}, mw...)
	return e
}

func TestLoadSessionAnonymousWithoutCookie(t *testing.T) {
	var got session.Session
	e := echo.New()
	e.Use(LoadSession(secret, quietLogger()))
	e.GET("/", func(c echo.Context) error {
		got = session.From(c)
		return c.NoContent(http.StatusNoContent)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, got.IsAuthenticated())
}

func TestLoadSessionClearsInvalidCookie(t *testing.T) {
	e := echo.New()
	e.Use(LoadSession(secret, quietLogger()))
	e.GET("/", func(c echo.Context) error {
		assert.False(t, session.From(c).IsAuthenticated())
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-jwt"})
	rec := serve(e, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestRequireAuthRedirectsToLogin(t *testing.T) {
	e := newEcho(RequireAuth())

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fdashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAuthHTMXRedirect(t *testing.T) {
	e := newEcho(RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login?next=%2Fdashboard", rec.Header().Get("HX-Redirect"))
}

func TestRequireAdmin(t *testing.T) {
	e := newEcho(RequireAuth(), RequireAdmin())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token(t, "USER")})
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token(t, "ADMIN")})
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

func TestRequireSuperAdmin(t *testing.T) {
	e := newEcho(RequireSuperAdmin())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token(t, "ADMIN")})
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token(t, "SUPER_ADMIN")})
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

func TestBuildRateKeyUsesSessionUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/login")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:user:anon:route:POST /login", buildRateKey(cfg, c))

	session.Set(c, session.Session{AccessToken: "x", UserID: 9})
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:9", buildRateKey(cfg, c))
}

func TestParseBucketResult(t *testing.T) {
	allowed, remaining, retry, ok := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
	require.True(t, ok)
	assert.False(t, allowed)
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, int64(1500), retry)

	_, _, _, ok = parseBucketResult("nope")
	assert.False(t, ok)
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	e := newEcho(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, quietLogger()))
	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil)).Code)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"text/html; charset=UTF-8"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte("<p>hi</p>"))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "text/html; charset=UTF-8", got.Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", string(body))

	_, _, _, ok = decodePayload([]byte{1, 2})
	assert.False(t, ok)
}

func TestCacheableOnlyForAnonymousConfiguredPaths(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Paths: map[string]bool{"/movies": true}}
	e := echo.New()

	ctx := func(path string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), httptest.NewRecorder())
		c.SetPath(path)
		return c
	}

	assert.True(t, cacheable(cfg, ctx("/movies")))
	assert.False(t, cacheable(cfg, ctx("/dashboard")))

	c := ctx("/movies")
	session.Set(c, session.Session{AccessToken: "x", UserID: 1})
	assert.False(t, cacheable(cfg, c))

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "abc"})
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/movies")
	assert.False(t, cacheable(cfg, c))
}

func TestPageCacheKeySeparatesFragments(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "page"}
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/movies?genreId=2", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/movies")
	full := pageCacheKey(cfg, c)

	req = httptest.NewRequest(http.MethodGet, "/movies?genreId=2", nil)
	req.Header.Set("HX-Request", "true")
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/movies")
	assert.NotEqual(t, full, pageCacheKey(cfg, c))
	assert.Contains(t, full, "page:")
}
