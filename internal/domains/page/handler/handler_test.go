package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wedding-site/internal/domains/content"
	"wedding-site/internal/domains/page"
	"wedding-site/internal/domains/slider"
	"wedding-site/internal/infrastructure/realtime"
	"wedding-site/internal/infrastructure/render"
	"wedding-site/pkg/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, source content.Source) (*gin.Engine, *realtime.Hub, *page.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f, err := os.Open(filepath.Join("..", "testdata", "index.html"))
	require.NoError(t, err)
	defer f.Close()
	doc, err := render.ParseDocument(f)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	loop := scheduler.NewLoop(16)
	go loop.Run(ctx)

	hub := realtime.NewHub()
	t.Cleanup(hub.Close)

	registry := slider.NewRegistry()
	opts := slider.DefaultOptions()
	opts.AutoPlayInterval = time.Hour // keep timers out of the way
	loader := content.NewLoader(source, doc, loop, registry,
		content.DefaultRegions(), content.DefaultSliders(), opts)

	p := page.NewController(doc, loop, loader, registry, hub)
	require.NoError(t, p.Start(ctx))

	h := NewPageHandler(p, hub, "test")
	r := gin.New()
	r.GET("/", h.Index)
	r.GET("/ws", h.Stream)
	r.GET("/api/v1/health", h.Health)
	return r, hub, p
}

func fileSource() content.Source {
	return content.NewFileSource(filepath.Join("..", "testdata", "config.json"))
}

func TestIndex_ServesRenderedPage(t *testing.T) {
	r, _, _ := setup(t, fileSource())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `<h1 id="hero-title" class="hero-title">Yuki &amp; Moka</h1>`)
	assert.Contains(t, body, `class="mySlides fade-slide"`)
}

func TestIndex_ServedWhenContentFails(t *testing.T) {
	r, _, _ := setup(t, content.SourceFunc(func(context.Context) ([]byte, error) {
		return nil, errors.New("gone")
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="loadingOverlay" class="loading-overlay" style="display: none"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"degraded"`)
	assert.Contains(t, w.Body.String(), "gone")
}

func TestHealth(t *testing.T) {
	r, _, _ := setup(t, fileSource())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			Version  string `json:"version"`
			Services struct {
				Content string         `json:"content"`
				Sliders []slider.State `json:"sliders"`
			} `json:"services"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "test", env.Data.Version)
	assert.Equal(t, "ok", env.Data.Services.Content)
	assert.Len(t, env.Data.Services.Sliders, 2)
}

func TestStream_SendsInitialStatesThenChanges(t *testing.T) {
	r, hub, p := setup(t, fileSource())
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	var initial []slider.State
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Len(t, initial, 2)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = p.ClickDot(context.Background(), "memories", 7)
	require.NoError(t, err)

	var change slider.State
	require.NoError(t, conn.ReadJSON(&change))
	assert.Equal(t, "memories", change.Key)
	assert.Equal(t, 7, change.CurrentIndex)
}
