package web

import (
	"net/http"
	"strings"

	"portfolio/internal/content"
	"portfolio/internal/notify"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.store.FeaturedProjects(ctx, 3)
	if err != nil {
		h.renderError(w, err)
		return
	}
	services, err := h.store.FeaturedServices(ctx)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, "index", map[string]any{
		"Title":    "Home",
		"Projects": projects,
		"Services": services,
	})
}

func (h *Handler) services(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "services", map[string]any{
		"Title":    "Services",
		"Services": services,
	})
}

func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "portfolio", map[string]any{
		"Title":    "Portfolio",
		"Projects": projects,
	})
}

func (h *Handler) contactForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "contact", map[string]any{"Title": "Contact"})
}

func (h *Handler) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	body := strings.TrimSpace(r.PostFormValue("message"))
	if name == "" || email == "" || body == "" {
		http.Error(w, "name, email and message are required", http.StatusBadRequest)
		return
	}

	msg, err := h.store.CreateMessage(r.Context(), content.Message{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Company: strings.TrimSpace(r.PostFormValue("company")),
		Budget:  strings.TrimSpace(r.PostFormValue("budget")),
		Body:    body,
	})
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.hub.Publish(notify.Event{
		Type:      notify.EventMessageReceived,
		MessageID: msg.ID,
		Name:      msg.Name,
		CreatedAt: msg.CreatedAt,
	})

	h.render(w, "contact", map[string]any{
		"Title":   "Contact",
		"Success": true,
	})
}

func (h *Handler) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nDisallow: /admin\n"))
}
