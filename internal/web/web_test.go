package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/auth"
	"portfolio/internal/content"
	"portfolio/internal/identity"
	"portfolio/internal/notify"
	"portfolio/internal/session"
)

type testSite struct {
	mux     *http.ServeMux
	gateway *auth.Gateway
	store   *content.MemoryStore
	hub     *notify.Hub
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	idStore := identity.NewMemoryStore()
	require.NoError(t, idStore.EnsureDefaultAdmin(ctx, now))

	ctStore := content.NewMemoryStore()
	require.NoError(t, ctStore.Seed(ctx, now))

	gw := auth.NewGateway(slog.Default(), auth.Config{SessionTTL: time.Hour},
		idStore, session.NewRegistry())
	hub := notify.NewHub(slog.Default())

	h, err := NewHandler(slog.Default(), gw, ctStore, hub)
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)

	return &testSite{mux: mux, gateway: gw, store: ctStore, hub: hub}
}

func (s *testSite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// login performs a real login through the handler and returns the session cookie.
func (s *testSite) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := s.do(postForm("/admin/login", url.Values{
		"username": {identity.DefaultUsername},
		"password": {identity.DefaultPassword},
	}))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			require.True(t, c.HttpOnly, "session cookie must be HttpOnly")
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestPublicPages(t *testing.T) {
	s := newTestSite(t)

	for _, path := range []string{"/", "/services", "/portfolio", "/contact"} {
		rec := s.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestProtectedPageRedirectsToLogin(t *testing.T) {
	s := newTestSite(t)

	for _, path := range []string{"/admin", "/admin/change-password"} {
		rec := s.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, auth.LoginPath, rec.Header().Get("Location"), path)
	}
}

func TestLoginAndDashboard(t *testing.T) {
	s := newTestSite(t)
	cookie := s.login(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	rec := s.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signed in as")
	assert.Contains(t, rec.Body.String(), identity.DefaultUsername)
}

func TestLogin_BadCredentialsRendersGenericError(t *testing.T) {
	s := newTestSite(t)

	for _, form := range []url.Values{
		{"username": {identity.DefaultUsername}, "password": {"wrong"}},
		{"username": {"nosuchuser"}, "password": {"x"}},
	} {
		rec := s.do(postForm("/admin/login", form))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), genericLoginError)
	}
}

func TestLogout(t *testing.T) {
	s := newTestSite(t)
	cookie := s.login(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	req.AddCookie(cookie)
	rec := s.do(req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, auth.LoginPath, rec.Header().Get("Location"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "cookie not cleared")

	// The old token is dead server-side too.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusSeeOther, s.do(req).Code)
}

func TestChangePassword_ValidationMessages(t *testing.T) {
	s := newTestSite(t)

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{
			"too short",
			url.Values{"current_password": {identity.DefaultPassword},
				"new_password": {"abc"}, "confirm_password": {"abc"}},
			"Password must be at least 6 characters",
		},
		{
			"mismatch",
			url.Values{"current_password": {identity.DefaultPassword},
				"new_password": {"long-enough"}, "confirm_password": {"different"}},
			"Passwords do not match",
		},
		{
			"wrong current",
			url.Values{"current_password": {"nope"},
				"new_password": {"long-enough"}, "confirm_password": {"long-enough"}},
			"Wrong current password",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cookie := s.login(t)
			req := postForm("/admin/change-password", tc.form)
			req.AddCookie(cookie)
			rec := s.do(req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)

			// Failed validation keeps the session alive.
			get := httptest.NewRequest(http.MethodGet, "/admin", nil)
			get.AddCookie(cookie)
			assert.Equal(t, http.StatusOK, s.do(get).Code)
		})
	}
}

func TestChangePassword_SuccessForcesRelogin(t *testing.T) {
	s := newTestSite(t)
	cookie := s.login(t)

	req := postForm("/admin/change-password", url.Values{
		"current_password": {identity.DefaultPassword},
		"new_password":     {"fresh-secret"},
		"confirm_password": {"fresh-secret"},
	})
	req.AddCookie(cookie)
	rec := s.do(req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, auth.LoginPath, rec.Header().Get("Location"))

	// The acting session was revoked along with all others.
	get := httptest.NewRequest(http.MethodGet, "/admin", nil)
	get.AddCookie(cookie)
	assert.Equal(t, http.StatusSeeOther, s.do(get).Code)

	// The new password logs in.
	rec = s.do(postForm("/admin/login", url.Values{
		"username": {identity.DefaultUsername},
		"password": {"fresh-secret"},
	}))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestContactSubmitPublishesEvent(t *testing.T) {
	s := newTestSite(t)

	events, cancel := s.hub.Subscribe()
	defer cancel()

	rec := s.do(postForm("/contact", url.Values{
		"name":    {"Jordan"},
		"email":   {"jordan@example.com"},
		"message": {"Need a backend built."},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your message has been sent")

	select {
	case ev := <-events:
		assert.Equal(t, notify.EventMessageReceived, ev.Type)
		assert.Equal(t, "Jordan", ev.Name)
		assert.NotEmpty(t, ev.MessageID)
	default:
		t.Fatal("no event published")
	}

	msgs, err := s.store.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Read)
}

func TestMessageActions(t *testing.T) {
	s := newTestSite(t)
	cookie := s.login(t)

	msg, err := s.store.CreateMessage(context.Background(), content.Message{
		Name: "A", Email: "a@example.com", Body: "hi",
	})
	require.NoError(t, err)

	req := postForm("/admin/messages/"+msg.ID+"/read", nil)
	req.AddCookie(cookie)
	require.Equal(t, http.StatusSeeOther, s.do(req).Code)

	msgs, err := s.store.ListMessages(context.Background())
	require.NoError(t, err)
	require.True(t, msgs[0].Read)

	req = postForm("/admin/messages/"+msg.ID+"/delete", nil)
	req.AddCookie(cookie)
	require.Equal(t, http.StatusSeeOther, s.do(req).Code)

	req = postForm("/admin/messages/"+msg.ID+"/delete", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)

	// Unauthenticated callers are redirected, not served.
	assert.Equal(t, http.StatusSeeOther,
		s.do(postForm("/admin/messages/"+msg.ID+"/read", nil)).Code)
}
