package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kh-portfolio/internal/httpx"
	"kh-portfolio/internal/session"
	"kh-portfolio/internal/transport"
	"kh-portfolio/internal/view"
)

type ViewResponse struct {
	view.State
	Admin  bool   `json:"admin"`
	Action string `json:"action,omitempty"`
}

type NavigateRequest struct {
	View string `json:"view" validate:"required"`
}

func viewResponse(sess *session.Session, st view.State) ViewResponse {
	return ViewResponse{State: st, Admin: sess.IsAdmin()}
}

func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}
	transport.WriteJSON(w, http.StatusOK, viewResponse(sess, sess.State()))
}

func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}

	var req NavigateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("view navigate: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("view navigate: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	st, ok := sess.Navigate(view.Name(strings.TrimSpace(req.View)))
	if !ok {
		log.Warn("view navigate: unreachable", slog.String("view", req.View))
		transport.WriteError(w, http.StatusBadRequest, "unknown view", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, viewResponse(sess, st))
}

// ClickLogo counts one click of the logo gesture. A third click inside the
// window opens the admin entry.
func (s *Server) ClickLogo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}
	action, st := sess.ClickLogo()
	if action == view.ActionAdmin {
		s.logWithRequest(r).Info("view logo: admin entry", slog.String("session_id", sess.ID))
	}
	resp := viewResponse(sess, st)
	resp.Action = action.String()
	transport.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) SelectWork(w http.ResponseWriter, r *http.Request) {
	s.openWork(w, r, false)
}

func (s *Server) ShowWorkDetail(w http.ResponseWriter, r *http.Request) {
	s.openWork(w, r, true)
}

func (s *Server) openWork(w http.ResponseWriter, r *http.Request, detail bool) {
	log := s.logWithRequest(r)
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	work, found := s.Works.Get(id)
	if !found {
		log.Warn("view open work: not found", slog.String("id", id))
		transport.WriteError(w, http.StatusNotFound, "work not found", nil)
		return
	}

	var st view.State
	if detail {
		st = sess.ShowDetail(work)
	} else {
		st = sess.SelectWork(work)
	}
	transport.WriteJSON(w, http.StatusOK, viewResponse(sess, st))
}

// VisitWork hands back the selected work's live url. Placeholder links are
// inert.
func (s *Server) VisitWork(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}
	url, ok := sess.VisitURL()
	if !ok {
		transport.WriteError(w, http.StatusConflict, "no project url", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
