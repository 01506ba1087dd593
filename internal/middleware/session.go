package middleware

import (
	"log/slog"
	"net/http"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/httpx"
	"kh-portfolio/internal/session"
	"kh-portfolio/internal/transport"
)

const SessionCookie = "kh_session"

// Session attaches the visitor's session to the request, starting a new one
// when the cookie is missing, invalid or names a swept session.
func Session(reg *session.Registry, tokens *auth.Manager, secure bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s := lookupSession(reg, tokens, r); s != nil {
				next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
				return
			}

			s := reg.Create()
			token, err := tokens.NewSessionToken(s.ID)
			if err != nil {
				httpx.Logger(log, r).Error("session create: sign failed", slog.String("error", err.Error()))
				transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(tokens.TTL.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

func lookupSession(reg *session.Registry, tokens *auth.Manager, r *http.Request) *session.Session {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	id, err := tokens.ParseSessionToken(cookie.Value)
	if err != nil {
		return nil
	}
	s, ok := reg.Get(id)
	if !ok {
		return nil
	}
	return s
}

// AdminOnly lets the request through only when the session has passed the
// admin gate.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok || !s.IsAdmin() {
			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
