package handler

import (
	"bytes"
	"net/http"
	"time"

	"wedding-site/internal/domains/page"
	"wedding-site/internal/infrastructure/realtime"
	"wedding-site/internal/shared/middleware"
	"wedding-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PageHandler struct {
	page    *page.Controller
	hub     *realtime.Hub
	version string
}

func NewPageHandler(p *page.Controller, hub *realtime.Hub, version string) *PageHandler {
	return &PageHandler{page: p, hub: hub, version: version}
}

// ========== INDEX: GET / ==========
// The page is served even when the content failed to load.
func (h *PageHandler) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.page.Render(c.Request.Context(), &buf); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
		response.ServiceUnavailable(c, "page is not available")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// ========== HEALTH: GET /api/v1/health ==========
func (h *PageHandler) Health(c *gin.Context) {
	contentStatus := "ok"
	var contentErr string
	if !h.page.ContentLoaded() {
		contentStatus = "degraded"
		if err := h.page.ContentError(); err != nil {
			contentErr = err.Error()
		}
	}

	states, err := h.page.States(c.Request.Context())
	if err != nil {
		response.ServiceUnavailable(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.version,
		"services": gin.H{
			"content":       contentStatus,
			"content_error": contentErr,
			"sliders":       states,
			"viewers":       h.hub.Clients(),
		},
	})
}

// ========== WEBSOCKET: GET /ws ==========
// Streams slider state changes; the first message is the full state list.
// Blocks until the viewer disconnects.
func (h *PageHandler) Stream(c *gin.Context) {
	states, err := h.page.States(c.Request.Context())
	if err != nil {
		response.ServiceUnavailable(c, err.Error())
		return
	}

	viewer := middleware.ClientIPFromContext(c.Request.Context())
	if err := h.hub.ServeWS(c.Writer, c.Request, states); err != nil {
		log.Warn().Err(err).Str("ip", viewer).Msg("Websocket upgrade failed")
		return
	}
	log.Info().Str("ip", viewer).Int("viewers", h.hub.Clients()).Msg("Viewer disconnected")
}
