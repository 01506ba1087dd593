package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kh-portfolio/internal/carousel"
	"kh-portfolio/internal/httpx"
	"kh-portfolio/internal/transport"
)

type CarouselResponse struct {
	carousel.Strip
	Started bool `json:"started"`
}

type CarouselEventRequest struct {
	Type    string  `json:"type" validate:"required,oneof=hover leave scroll visibility click"`
	Variant string  `json:"variant"`
	Ratio   float64 `json:"ratio" validate:"gte=0,lte=1"`
	Index   int     `json:"index" validate:"gte=0"`
}

func (s *Server) strip(r *http.Request, raw string) (carousel.Strip, bool) {
	v, ok := carousel.ParseVariant(raw)
	if !ok {
		s.logWithRequest(r).Warn("carousel: invalid variant", slog.String("variant", raw))
		return carousel.Strip{}, false
	}
	return carousel.Build(s.Works.List(), v, carousel.DefaultItemWidth), true
}

func (s *Server) GetCarousel(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}
	strip, ok := s.strip(r, r.URL.Query().Get("variant"))
	if !ok {
		transport.WriteError(w, http.StatusBadRequest, "invalid variant", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, CarouselResponse{Strip: strip, Started: sess.ObserveVisibility(0)})
}

// CarouselEvent feeds visitor input into the strip: hover and scroll change
// the speed, visibility starts the marquee and click opens a work.
func (s *Server) CarouselEvent(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}

	var req CarouselEventRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("carousel event: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Type = strings.TrimSpace(req.Type)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("carousel event: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	sched := sess.Carousel()
	now := s.now()
	switch req.Type {
	case "hover":
		sched.Hover(true)
	case "leave":
		sched.Hover(false)
	case "scroll":
		sched.UserScroll(now)
	case "visibility":
		transport.WriteJSON(w, http.StatusOK, map[string]bool{"started": sess.ObserveVisibility(req.Ratio)})
		return
	case "click":
		strip, ok := s.strip(r, req.Variant)
		if !ok {
			transport.WriteError(w, http.StatusBadRequest, "invalid variant", nil)
			return
		}
		work, err := strip.Click(req.Index)
		switch {
		case errors.Is(err, carousel.ErrInertItem):
			transport.WriteJSON(w, http.StatusOK, viewResponse(sess, sess.State()))
			return
		case errors.Is(err, carousel.ErrOutOfRange):
			transport.WriteError(w, http.StatusBadRequest, "invalid index", nil)
			return
		}
		transport.WriteJSON(w, http.StatusOK, viewResponse(sess, sess.SelectWork(work)))
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"speed":  sched.Speed(now),
		"offset": sched.Offset(),
	})
}

// CarouselStream pushes scroll frames as server-sent events until the
// visitor goes away.
func (s *Server) CarouselStream(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	sess, ok := s.visitor(w, r)
	if !ok {
		return
	}

	strip, ok := s.strip(r, r.URL.Query().Get("variant"))
	if !ok {
		transport.WriteError(w, http.StatusBadRequest, "invalid variant", nil)
		return
	}
	switch {
	case strip.Variant == carousel.VariantStatic:
		transport.WriteError(w, http.StatusBadRequest, "static strip does not scroll", nil)
		return
	case strip.Variant == carousel.VariantMarquee && !sess.ObserveVisibility(0):
		transport.WriteError(w, http.StatusConflict, "strip not visible yet", nil)
		return
	}

	sched := sess.Carousel()
	if err := sched.Acquire(); err != nil {
		transport.WriteError(w, http.StatusConflict, "stream already open", nil)
		return
	}
	sched.SetLoopWidth(strip.LoopWidth)

	flusher, ok := transport.StartEvents(w)
	if !ok {
		sched.Release()
		transport.WriteError(w, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}

	interval := s.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	log.Info("carousel stream: open", slog.String("session_id", sess.ID), slog.String("variant", string(strip.Variant)))
	err := sched.RunAcquired(r.Context(), interval, func(f carousel.Frame) error {
		return transport.WriteEvent(w, flusher, "frame", f)
	})
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		log.Info("carousel stream: closed", slog.String("session_id", sess.ID))
	default:
		log.Warn("carousel stream: ended", slog.String("session_id", sess.ID), slog.String("error", err.Error()))
	}
}
