package works

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kh-portfolio/internal/storage"
	"kh-portfolio/internal/transport"
	"kh-portfolio/internal/validation"
)

func newTestRouter(t *testing.T) (http.Handler, *Store) {
	t.Helper()
	val := validation.New()
	s := NewStore(storage.NewMemory(0), Seed(), discardLogger())
	s.Load(context.Background())
	f, err := NewForm(s, val)
	require.NoError(t, err)
	h := NewHandler(s, f, val, discardLogger())

	r := chi.NewRouter()
	r.Get("/works", h.PublicList)
	r.Get("/works/{id}", h.PublicGet)
	r.Get("/admin/works", h.AdminList)
	r.Post("/admin/works", h.AdminCreate)
	r.Put("/admin/works/{id}", h.AdminUpdate)
	r.Delete("/admin/works/{id}", h.AdminDelete)
	return r, s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicListSorted(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/works?sort=year_asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []Work `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"1", "4", "6", "3"}, ids(body.Items))

	rec = do(t, h, http.MethodGet, "/works?sort=random", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicGet(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/works/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var w Work
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &w))
	assert.Equal(t, "Augusta National Experience", w.Title)

	rec = do(t, h, http.MethodGet, "/works/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCreateWithoutThumbnail(t *testing.T) {
	h, s := newTestRouter(t)

	body := `{"title":"X","category":"Corporate","year":2024,"duration":"Website","thumbnail":"","projectUrl":"#","description":"d","credits":{"developer":"K"}}`
	rec := do(t, h, http.MethodPost, "/admin/works", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Please select a thumbnail image", resp.Error)
	assert.Len(t, s.List(), len(Seed()))
}

func TestAdminCreateAndDelete(t *testing.T) {
	h, s := newTestRouter(t)

	body := `{"title":"X","category":"Corporate","year":2024,"duration":"Website","thumbnail":"https://e.com/x.png","projectUrl":"#","description":"d","credits":{"developer":"K"}}`
	rec := do(t, h, http.MethodPost, "/admin/works", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Work
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "7", created.ID)

	rec = do(t, h, http.MethodDelete, "/admin/works/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted"`)

	rec = do(t, h, http.MethodDelete, "/admin/works/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unchanged"`)
	assert.Len(t, s.List(), len(Seed()))
}

func TestAdminUpdateUnknown(t *testing.T) {
	h, _ := newTestRouter(t)

	body := `{"title":"X","category":"Corporate","year":2024,"duration":"Website","thumbnail":"https://e.com/x.png","projectUrl":"#","description":"d","credits":{"developer":"K"}}`
	rec := do(t, h, http.MethodPut, "/admin/works/99", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/admin/works/1", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminListStats(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/admin/works", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []Work `json:"items"`
		Stats Stats  `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Stats.Total)
	assert.Equal(t, 4, body.Stats.ByCategory[CategoryWebDevelopment])
}
