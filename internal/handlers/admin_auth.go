package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/httpx"
	"kh-portfolio/internal/transport"
)

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}

	var req AdminLoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	st, err := sess.Login(s.Gate, req.Password)
	if errors.Is(err, auth.ErrIncorrectPassword) {
		log.Warn("admin login: incorrect password", slog.String("session_id", sess.ID))
		transport.WriteError(w, http.StatusUnauthorized, err.Error(), nil)
		return
	}
	if err != nil {
		log.Error("admin login: failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	log.Info("admin login: ok", slog.String("session_id", sess.ID))
	transport.WriteJSON(w, http.StatusOK, viewResponse(sess, st))
}

func (s *Server) AdminLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}
	st := sess.Logout()
	s.logWithRequest(r).Info("admin logout: ok", slog.String("session_id", sess.ID))
	transport.WriteJSON(w, http.StatusOK, viewResponse(sess, st))
}
