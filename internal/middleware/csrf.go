package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

const csrfCookieName = "csrf_token"

// CSRF issues a CSRF cookie and verifies modifying requests carry the
// token in either the X-CSRF-Token header or the csrf_token form field
// (double submit cookie, token tied to the session).
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		token := s.CSRFToken
		if token == "" { // initialize if missing
			token = newCSRFToken()
			s.CSRFToken = token
			s.MarkDirty()
		}

		// Ensure client has cookie with the same token
		needSet := true
		if c, err := r.Cookie(csrfCookieName); err == nil && c.Value == token {
			needSet = false
		}
		if needSet {
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: false,
				Secure:   sessionSecure,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		// Machine endpoints under /internal/ carry their own shared
		// token; no browser form ever posts there.
		if !isSafeMethod(r.Method) && !strings.HasPrefix(r.URL.Path, "/internal/") {
			sent := r.Header.Get("X-CSRF-Token")
			if sent == "" {
				sent = r.PostFormValue("csrf_token")
			}
			if sent == "" || sent != token {
				http.Error(w, "invalid CSRF token", http.StatusForbidden)
				return
			}
			if c, err := r.Cookie(csrfCookieName); err != nil || c.Value != token {
				http.Error(w, "invalid CSRF token", http.StatusForbidden)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
