package works

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kh-portfolio/internal/httpx"
	"kh-portfolio/internal/transport"
	"kh-portfolio/internal/validation"
)

type Handler struct {
	store *Store
	form  *Form
	val   *validation.Validator
	log   *slog.Logger
}

func NewHandler(store *Store, form *Form, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		form:  form,
		val:   val,
		log:   log,
	}
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(h.log, r)
	filter := ListFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
	}
	switch filter.Sort {
	case SortInsertion, SortYearAsc, SortYearDesc:
	default:
		log.Warn("works public list: invalid sort", slog.String("sort", filter.Sort))
		transport.WriteError(w, http.StatusBadRequest, "invalid sort", nil)
		return
	}

	items := h.store.Filter(filter)
	log.Info("works public list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (h *Handler) PublicGet(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("works public get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	item, ok := h.store.Find(id)
	if !ok {
		log.Warn("works public get: not found", slog.String("work_id", id))
		transport.WriteError(w, http.StatusNotFound, "work not found", nil)
		return
	}

	log.Info("works public get: ok", slog.String("work_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(h.log, r)
	items := h.store.List()
	stats := h.store.Stats()

	log.Info("admin works list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":      items,
		"stats":      stats,
		"categories": Categories,
	})
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(h.log, r)

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin works create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	item, err := h.form.Create(r.Context(), req)
	if err != nil {
		h.writeFormError(w, log, "admin works create", err)
		return
	}

	log.Info("admin works create: ok", slog.String("work_id", item.ID), slog.String("title", item.Title))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin works update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin works update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	item, err := h.form.Edit(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin works update: not found", slog.String("work_id", id))
			transport.WriteError(w, http.StatusNotFound, "work not found", nil)
			return
		}
		h.writeFormError(w, log, "admin works update", err)
		return
	}

	log.Info("admin works update: ok", slog.String("work_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

// AdminDelete succeeds for unknown ids as well; there is nothing left to
// remove either way.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin works delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	status := "deleted"
	if !h.store.Remove(r.Context(), id) {
		status = "unchanged"
	}

	log.Info("admin works delete: ok", slog.String("work_id", id), slog.String("status", status))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) writeFormError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	if errors.Is(err, ErrThumbnailRequired) {
		log.Warn(op + ": missing thumbnail")
		transport.WriteError(w, http.StatusBadRequest, "Please select a thumbnail image", map[string]string{"thumbnail": "required"})
		return
	}
	if ve := h.val.ValidationErrors(err); ve != nil {
		log.Warn(op + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(ve))
		return
	}
	log.Error(op+": unexpected error", slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
}
