package web

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const (
	authCookieName = "auth"

	// sessionLifetime is how long a login lasts before the password is asked
	// again.
	sessionLifetime = 8 * time.Hour
)

// authenticate trades the admin password for a signed session cookie.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if s.config.Password == "" {
		log.Print("error: refusing to authenticate, no password configured")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(s.config.Password)) != 1 {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	token, err := s.config.SignSession(sessionLifetime)
	if err != nil {
		log.Printf("error: unable to sign session: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// adminOnly requires a valid session cookie, cf. authenticate.
func (s *Server) adminOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := s.config.CheckSession(cookie.Value); err != nil {
			log.Printf("debug: rejected session: %s", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		h.ServeHTTP(w, r)
	})
}
