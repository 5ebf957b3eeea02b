package auth

import (
	"net/http"
)

// RequirePage guards a protected page. On failure it does not answer with a
// bare 401: the contract for the admin panel is an explicit redirect to the
// login page. On success the admin is attached to the request context.
func (g *Gateway) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adm, err := g.Authenticate(r.Context(), TokenFromRequest(r))
		if err != nil {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(withAdminContext(r.Context(), adm)))
	})
}
