package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/httpx"
	"kh-portfolio/internal/media"
	"kh-portfolio/internal/middleware"
	"kh-portfolio/internal/pages"
	"kh-portfolio/internal/session"
	"kh-portfolio/internal/transport"
	"kh-portfolio/internal/validation"
	"kh-portfolio/internal/works"
)

type Server struct {
	Works    *works.Store
	Form     *works.Form
	Pages    *pages.Catalog
	Images   *media.Resolver
	Sessions *session.Registry
	Tokens   *auth.Manager
	Gate     *auth.Gate
	Val      *validation.Validator
	Log      *slog.Logger

	UploadLimiter  *middleware.RateLimiter
	FrontendOrigin string
	CookieSecure   bool
	// FrameInterval is the tick of the carousel stream.
	FrameInterval time.Duration
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	return httpx.Logger(s.Log, r)
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// visitor returns the session the session middleware attached. It writes the
// error response itself when there is none.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		s.logWithRequest(r).Error("session lookup: missing from context")
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return nil, false
	}
	return sess, true
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"works":    len(s.Works.List()),
		"sessions": s.Sessions.Len(),
	})
}
