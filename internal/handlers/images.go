package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kh-portfolio/internal/media"
	"kh-portfolio/internal/transport"
)

// AdminUploadImage turns a picked thumbnail file into a data url the work
// form can store.
func (s *Server) AdminUploadImage(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			transport.WriteError(w, http.StatusRequestEntityTooLarge, media.ErrImageTooLarge.Error(), nil)
			return
		}
		log.Warn("admin images: invalid form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Warn("admin images: missing file")
		transport.WriteError(w, http.StatusBadRequest, "image file is required", nil)
		return
	}
	defer file.Close()

	dataURL, err := media.ReadUpload(file, header.Header.Get("Content-Type"), header.Size)
	switch {
	case errors.Is(err, media.ErrImageTooLarge):
		log.Warn("admin images: too large", slog.Int64("size", header.Size))
		transport.WriteError(w, http.StatusRequestEntityTooLarge, err.Error(), nil)
		return
	case errors.Is(err, media.ErrNotImage):
		log.Warn("admin images: not an image", slog.String("content_type", header.Header.Get("Content-Type")))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		log.Error("admin images: read failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	log.Info("admin images: ok", slog.String("filename", header.Filename), slog.Int64("size", header.Size))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"data_url": dataURL})
}

func (s *Server) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	work, ok := s.Works.Get(id)
	if !ok {
		s.logWithRequest(r).Warn("works thumbnail: not found", slog.String("id", id))
		transport.WriteError(w, http.StatusNotFound, "work not found", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, s.Images.Resolve(r.Context(), work.Thumbnail))
}
