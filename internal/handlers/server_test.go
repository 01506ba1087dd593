package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/carousel"
	"kh-portfolio/internal/media"
	"kh-portfolio/internal/middleware"
	"kh-portfolio/internal/pages"
	"kh-portfolio/internal/session"
	"kh-portfolio/internal/storage"
	"kh-portfolio/internal/validation"
	"kh-portfolio/internal/view"
	"kh-portfolio/internal/works"
)

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T) *client {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	val := validation.New()

	store := works.NewStore(storage.NewMemory(0), works.Seed(), log)
	store.Load(context.Background())
	form, err := works.NewForm(store, val)
	require.NoError(t, err)
	gate, err := auth.NewGate("")
	require.NoError(t, err)

	reg := session.NewRegistry(time.Hour, carousel.DefaultConfig(), log)
	t.Cleanup(reg.Close)

	s := &Server{
		Works:         store,
		Form:          form,
		Pages:         pages.NewCatalog(log),
		Images:        media.NewResolver(nil, 1, log),
		Sessions:      reg,
		Tokens:        &auth.Manager{Secret: []byte("test"), TTL: time.Hour, Issuer: "test"},
		Gate:          gate,
		Val:           val,
		Log:           log,
		UploadLimiter: middleware.NewRateLimiter(5, time.Minute),
		FrameInterval: time.Millisecond,
		Now:           func() time.Time { return time.Unix(7, 0) },
	}
	srv := httptest.NewServer(s.Routes(works.NewHandler(store, form, val, log)))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path, body string) (int, map[string]interface{}) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	require.NoError(c.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHealthAndSite(t *testing.T) {
	c := newTestServer(t)

	code, body := c.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(4), body["works"])

	code, body = c.do(http.MethodGet, "/api/site", "")
	require.Equal(t, http.StatusOK, code)
	hero := body["hero"].(map[string]interface{})
	assert.Equal(t, "Kraig Hamrick", hero["name"])
}

func TestPages(t *testing.T) {
	c := newTestServer(t)

	code, body := c.do(http.MethodGet, "/api/pages/not-found", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["index"], "7s into the epoch shows the third message")

	code, body = c.do(http.MethodGet, "/api/pages/about", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["bio_html"], 3)

	code, _ = c.do(http.MethodGet, "/api/pages/pricing", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLogoGestureAndAdminGate(t *testing.T) {
	c := newTestServer(t)

	code, _ := c.do(http.MethodGet, "/api/admin/works", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	var body map[string]interface{}
	for i := 0; i < 3; i++ {
		_, body = c.do(http.MethodPost, "/api/view/logo", "")
	}
	assert.Equal(t, "admin", body["action"])
	assert.Equal(t, string(view.AdminLogin), body["view"])

	code, body = c.do(http.MethodPost, "/api/admin/login", `{"password":"1234"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Incorrect password", body["error"])

	code, _ = c.do(http.MethodPost, "/api/admin/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = c.do(http.MethodPost, "/api/admin/login", `{"password":"2141"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(view.Admin), body["view"])
	assert.Equal(t, true, body["admin"])

	code, body = c.do(http.MethodGet, "/api/admin/works", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 4)

	code, body = c.do(http.MethodPost, "/api/admin/logout", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(view.Home), body["view"])

	code, _ = c.do(http.MethodGet, "/api/admin/works", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSelectWorkAndVisit(t *testing.T) {
	c := newTestServer(t)

	code, _ := c.do(http.MethodPost, "/api/view/visit", "")
	assert.Equal(t, http.StatusConflict, code, "nothing selected")

	code, _ = c.do(http.MethodPost, "/api/view/works/99", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := c.do(http.MethodPost, "/api/view/works/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(view.WorkLanding), body["view"])
	assert.Equal(t, "1", body["work"].(map[string]interface{})["id"])

	code, body = c.do(http.MethodPost, "/api/view/visit", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "https://linksdao.io", body["url"])

	code, body = c.do(http.MethodPost, "/api/view/works/1/detail", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(view.WorkDetail), body["view"])

	code, body = c.do(http.MethodPost, "/api/view/navigate", `{"view":"about"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(view.About), body["view"])
	assert.Nil(t, body["work"])

	code, _ = c.do(http.MethodPost, "/api/view/navigate", `{"view":"work-detail"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCarousel(t *testing.T) {
	c := newTestServer(t)

	code, body := c.do(http.MethodGet, "/api/carousel", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "scroll", body["variant"])
	items := body["items"].([]interface{})
	require.Len(t, items, 4)
	first := items[0].(map[string]interface{})["work"].(map[string]interface{})
	assert.Equal(t, "1", first["id"])

	code, body = c.do(http.MethodGet, "/api/carousel?variant=marquee", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 8)
	assert.Equal(t, false, body["started"])

	code, _ = c.do(http.MethodGet, "/api/carousel?variant=cube", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = c.do(http.MethodPost, "/api/carousel/events", `{"type":"hover"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "hover", body["speed"])

	code, body = c.do(http.MethodPost, "/api/carousel/events", `{"type":"visibility","ratio":0.5}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["started"])

	code, body = c.do(http.MethodPost, "/api/carousel/events", `{"type":"click","index":0}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(view.WorkLanding), body["view"])

	code, _ = c.do(http.MethodPost, "/api/carousel/events", `{"type":"click","index":40}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, "/api/carousel/events", `{"type":"spin"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCarouselStream(t *testing.T) {
	c := newTestServer(t)

	code, _ := c.do(http.MethodGet, "/api/carousel/stream?variant=static", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodGet, "/api/carousel/stream?variant=marquee", "")
	assert.Equal(t, http.StatusConflict, code)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/carousel/stream", nil)
	require.NoError(t, err)
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	require.True(t, sc.Scan())
	assert.Equal(t, "event: frame", sc.Text())
	require.True(t, sc.Scan())
	assert.True(t, strings.HasPrefix(sc.Text(), "data: "))

	var f carousel.Frame
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(sc.Text(), "data: ")), &f))
	assert.Equal(t, carousel.SpeedNormal, f.Speed)

	code, body := c.do(http.MethodGet, "/api/carousel/stream", "")
	assert.Equal(t, http.StatusConflict, code, "one stream per session")
	assert.Equal(t, "stream already open", body["error"])
}

func TestAdminUploadImage(t *testing.T) {
	c := newTestServer(t)

	upload := func(contentType string, data []byte) (int, map[string]interface{}) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="thumb"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost, c.base+"/api/admin/images", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		resp, err := c.http.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		var out map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	code, _ := upload("image/png", png)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/api/admin/login", `{"password":"2141"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := upload("image/png", png)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.HasPrefix(body["data_url"].(string), "data:image/png;base64,"))

	code, body = upload("application/pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please select an image file", body["error"])
}

func TestThumbnail(t *testing.T) {
	c := newTestServer(t)

	code, _ := c.do(http.MethodGet, "/api/works/99/thumbnail", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestValidationDetailsUseJSONNames(t *testing.T) {
	c := newTestServer(t)
	code, body := c.do(http.MethodPost, "/api/carousel/events", `{"type":"visibility","ratio":2}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]interface{}{"ratio": "lte"}, body["details"])
}

func TestAdminLoginRetryIsUnlimited(t *testing.T) {
	c := newTestServer(t)

	for i := 0; i < 25; i++ {
		code, body := c.do(http.MethodPost, "/api/admin/login", `{"password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, code, "attempt %d", i+1)
		require.Equal(t, "Incorrect password", body["error"])
	}

	code, body := c.do(http.MethodPost, "/api/admin/login", `{"password":"2141"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["admin"])
}
