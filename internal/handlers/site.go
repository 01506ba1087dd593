package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kh-portfolio/internal/pages"
	"kh-portfolio/internal/transport"
)

type SiteResponse struct {
	Hero    pages.Hero    `json:"hero"`
	Contact pages.Contact `json:"contact"`
	Social  []pages.Link  `json:"social"`
	Footer  pages.Footer  `json:"footer"`
}

func (s *Server) GetSite(w http.ResponseWriter, r *http.Request) {
	c := s.Pages.Content()
	transport.WriteJSON(w, http.StatusOK, SiteResponse{
		Hero:    c.Hero,
		Contact: c.Contact,
		Social:  c.Social,
		Footer:  c.Footer,
	})
}

func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	name := chi.URLParam(r, "name")
	page, err := s.Pages.Page(name, s.now())
	if errors.Is(err, pages.ErrUnknownPage) {
		log.Warn("pages get: not found", slog.String("page", name))
		transport.WriteError(w, http.StatusNotFound, "page not found", nil)
		return
	}
	if err != nil {
		log.Error("pages get: failed", slog.String("page", name), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, page)
}
