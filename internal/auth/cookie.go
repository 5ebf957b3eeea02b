package auth

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie presented by the admin's browser.
const CookieName = "admin_session"

// LoginPath is where the guard sends unauthenticated requests.
const LoginPath = "/admin/login"

// TokenFromRequest extracts the session token from the cookie, if any.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func (g *Gateway) cookieSecure(r *http.Request) bool {
	if g.cfg.CookieSecure != nil {
		return *g.cfg.CookieSecure
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}

// SetSessionCookie attaches the session cookie to the response.
// HttpOnly always; Secure follows the deployment (see Config.CookieSecure).
func (g *Gateway) SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   g.cookieSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (g *Gateway) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.cookieSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}
