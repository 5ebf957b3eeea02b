// Package web serves the public site and the admin panel: server-rendered
// html/template views over the content store, with the auth gateway guarding
// everything under /admin.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/content"
	"portfolio/internal/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Handler owns the HTTP surface of the site.
type Handler struct {
	log     *slog.Logger
	gateway *auth.Gateway
	store   content.Store
	hub     *notify.Hub
	tmpl    *template.Template

	// onLogin reports login results ("ok"/"fail") for metrics; optional.
	onLogin func(result string)
}

// Option configures optional Handler dependencies.
type Option func(*Handler)

// WithLoginObserver wires a login-result callback (used for metrics).
func WithLoginObserver(fn func(result string)) Option {
	return func(h *Handler) { h.onLogin = fn }
}

// NewHandler constructs the web handler and parses the embedded templates.
func NewHandler(log *slog.Logger, gw *auth.Gateway, store content.Store, hub *notify.Hub, opts ...Option) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	h := &Handler{log: log, gateway: gw, store: store, hub: hub, tmpl: tmpl}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Register wires every route onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /services", h.services)
	mux.HandleFunc("GET /portfolio", h.portfolio)
	mux.HandleFunc("GET /contact", h.contactForm)
	mux.HandleFunc("POST /contact", h.contactSubmit)
	mux.HandleFunc("GET /robots.txt", h.robots)

	mux.HandleFunc("GET /admin/login", h.adminLoginPage)
	mux.HandleFunc("POST /admin/login", h.adminLogin)
	mux.HandleFunc("GET /admin/logout", h.adminLogout)

	guard := h.gateway.RequirePage
	mux.Handle("GET /admin", guard(http.HandlerFunc(h.adminPanel)))
	mux.Handle("GET /admin/change-password", guard(http.HandlerFunc(h.changePasswordPage)))
	mux.Handle("POST /admin/change-password", guard(http.HandlerFunc(h.changePassword)))
	mux.Handle("POST /admin/messages/{id}/read", guard(http.HandlerFunc(h.markMessageRead)))
	mux.Handle("POST /admin/messages/{id}/delete", guard(http.HandlerFunc(h.deleteMessage)))
	mux.Handle("GET /admin/ws", guard(http.HandlerFunc(h.adminWS)))
}

// render executes the named page template.
func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("web.render.fail", "template", name, "err", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	h.log.Error("web.request.fail", "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (h *Handler) reportLogin(result string) {
	if h.onLogin != nil {
		h.onLogin(result)
	}
}
