package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	"github.com/hellohellohell0/mcmarket/pkg/logger"
)

const sessionName = "mcmarket_admin"
const sessionAdminKey = "admin"

// RequireAdmin is a chi middleware that gates moderation endpoints behind the
// admin session. It fails closed: any cookie, decode, or store error yields
// the same generic 401 denial, never the reason.
//
// After this middleware, handlers and services can consult
// auth.IsAdminFromCtx(r.Context()).
func RequireAdmin(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid admin session cookie", "error", err)
				deny(w)
				return
			}

			isAdmin, ok := session.Values[sessionAdminKey].(bool)
			if !ok || !isAdmin {
				deny(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
		})
	}
}

func deny(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
}
