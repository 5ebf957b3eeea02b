package web

import (
	"errors"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/content"
	"portfolio/internal/identity"
)

// genericLoginError is shown for every login failure; it never distinguishes
// unknown username from wrong password.
const genericLoginError = "Invalid username or password"

func (h *Handler) adminLoginPage(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "admin_login", map[string]any{"Title": "Admin sign in"})
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	token, expiresAt, err := h.gateway.Login(r.Context(),
		r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.reportLogin("fail")
		if errors.Is(err, identity.ErrInvalidCredentials) {
			h.render(w, "admin_login", map[string]any{
				"Title": "Admin sign in",
				"Error": genericLoginError,
			})
			return
		}
		h.renderError(w, err)
		return
	}

	h.reportLogin("ok")
	h.gateway.SetSessionCookie(w, r, token, expiresAt)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	h.gateway.Logout(auth.TokenFromRequest(r))
	h.gateway.ClearSessionCookie(w, r)
	http.Redirect(w, r, auth.LoginPath, http.StatusFound)
}

func (h *Handler) adminPanel(w http.ResponseWriter, r *http.Request) {
	adm, _ := auth.AdminFromContext(r.Context())

	messages, err := h.store.ListMessages(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, "admin", map[string]any{
		"Title":         "Admin panel",
		"AdminUsername": adm.Username,
		"Messages":      messages,
		"Stats":         stats,
	})
}

func (h *Handler) changePasswordPage(w http.ResponseWriter, r *http.Request) {
	adm, _ := auth.AdminFromContext(r.Context())
	h.render(w, "change_password", map[string]any{
		"Title":         "Change password",
		"AdminUsername": adm.Username,
	})
}

// validationMessage maps gateway validation errors to the exact user-facing
// wording of the change-password view.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrWrongPassword):
		return "Wrong current password"
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "Password must be at least 6 characters"
	default:
		return ""
	}
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	adm, _ := auth.AdminFromContext(r.Context())
	err := h.gateway.ChangePassword(r.Context(),
		auth.TokenFromRequest(r),
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"),
	)
	switch {
	case err == nil:
		// Every session for this admin is gone, including this one.
		h.gateway.ClearSessionCookie(w, r)
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
	case auth.IsValidation(err):
		h.render(w, "change_password", map[string]any{
			"Title":         "Change password",
			"AdminUsername": adm.Username,
			"Error":         validationMessage(err),
		})
	case errors.Is(err, auth.ErrUnauthenticated):
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
	default:
		h.renderError(w, err)
	}
}

func (h *Handler) markMessageRead(w http.ResponseWriter, r *http.Request) {
	err := h.store.MarkMessageRead(r.Context(), r.PathValue("id"))
	h.finishMessageAction(w, r, err)
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteMessage(r.Context(), r.PathValue("id"))
	h.finishMessageAction(w, r, err)
}

func (h *Handler) finishMessageAction(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	case errors.Is(err, content.ErrNotFound):
		http.NotFound(w, r)
	default:
		h.renderError(w, err)
	}
}
