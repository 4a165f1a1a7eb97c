package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	"github.com/hellohellohell0/mcmarket/pkg/logger"
	pkgvalidator "github.com/hellohellohell0/mcmarket/pkg/validator"
)

// Credentials is the injected moderator credential checked by the login
// endpoint. It comes from configuration; nothing in this package (or the
// repository) hardcodes a secret.
type Credentials struct {
	Username string
	Password string
}

// Verify compares the supplied pair against the configured credential in
// constant time.
func (c Credentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	return userOK && passOK
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler returns the POST /admin/login handler. On a matching
// credential it marks the session as a moderator session; on any failure it
// returns the same generic denial.
func LoginHandler(store sessions.Store, creds Credentials, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := pkgvalidator.ValidateRequest[loginRequest](w, r)
		if !ok {
			return
		}

		if !creds.Verify(req.Username, req.Password) {
			log.WarnContext(r.Context(), "admin login rejected", "username", req.Username)
			httpx.JSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		session, err := store.Get(r, sessionName)
		if err != nil {
			// Tampered cookie — start a clean session rather than failing login.
			session.Values = map[any]any{}
		}
		session.Values[sessionAdminKey] = true
		if err := session.Save(r, w); err != nil {
			log.ErrorContext(r.Context(), "persist admin session", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "login failed")
			return
		}

		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// LogoutHandler returns the POST /admin/logout handler. It expires the
// session cookie and deletes the server-side session record.
func LogoutHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, sessionName)
		if err == nil {
			session.Options.MaxAge = -1
			if err := session.Save(r, w); err != nil {
				log.WarnContext(r.Context(), "expire admin session", "error", err)
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
