package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/flash"
	"github.com/iliyamo/cinema-dashboard/internal/handler"
	"github.com/iliyamo/cinema-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-dashboard/internal/queue"
	"github.com/iliyamo/cinema-dashboard/internal/router"
	"github.com/iliyamo/cinema-dashboard/internal/session"
	"github.com/iliyamo/cinema-dashboard/internal/view"
)

const secret = "test-secret"

// upstream is a scripted stand-in for the REST API that records every
// call it receives.
type upstream struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []call
}

type reply struct {
	status int
	body   any
}

type call struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

func (u *upstream) on(method, path string, status int, body any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[method+" "+path] = reply{status: status, body: body}
}

func (u *upstream) count(method, path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (u *upstream) last(method, path string) (call, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := len(u.calls) - 1; i >= 0; i-- {
		if c := u.calls[i]; c.Method == method && c.Path == path {
			return c, true
		}
	}
	return call{}, false
}

func (u *upstream) mutations() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		if c.Method != http.MethodGet {
			n++
		}
	}
	return n
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	u.mu.Lock()
	u.calls = append(u.calls, call{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: body})
	rep, ok := u.routes[r.Method+" "+r.URL.Path]
	u.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if rep.body != nil {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(rep.status)
	if rep.body != nil {
		_ = json.NewEncoder(w).Encode(rep.body)
	}
}

// recorder keeps published audit events.
type recorder struct {
	mu     sync.Mutex
	events []queue.AuditEvent
}

func (r *recorder) Publish(_ context.Context, ev queue.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

type app struct {
	e     *echo.Echo
	api   *upstream
	audit *recorder
}

func newApp(t *testing.T) *app {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	up := &upstream{routes: map[string]reply{}}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)
	api := apiclient.New(srv.URL, 2*time.Second)

	renderer, err := view.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = view.ErrorHandler(log)
	e.Use(middleware.LoadSession(secret, log))

	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	rec := &recorder{}
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(api, secret, false, log), pass)
	router.RegisterPublic(e, handler.NewCatalogHandler(api, log), pass, pass)
	router.RegisterDashboard(e, handler.NewDashboardHandler(api, rec, log), pass)

	return &app{e: e, api: up, audit: rec}
}

func token(t *testing.T, id uint64, roles ...string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   id,
		"email": "viewer@example.com",
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

// request builds a request as the viewer holding tok; an empty tok is
// anonymous.
func (a *app) request(method, target, tok string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})
	}
	return req
}

func (a *app) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// do sends a request, form-encoding values when given.
func (a *app) do(method, target, tok string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})
	}
	return a.serve(req)
}

// flashOf decodes the toast a response queued for the next page.
func flashOf(t *testing.T, rec *httptest.ResponseRecorder) *flash.Message {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "flash" && ck.MaxAge >= 0 {
			req.AddCookie(ck)
		}
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())
	return flash.Pop(c)
}
