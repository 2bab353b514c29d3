package handler

import (
	"net/http"
	"strconv"

	"wedding-site/internal/domains/slider"
	"wedding-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type SliderHandler struct {
	service slider.Service
}

func NewSliderHandler(svc slider.Service) *SliderHandler {
	return &SliderHandler{service: svc}
}

// ========== LIST: GET /api/v1/sliders ==========
func (h *SliderHandler) List(c *gin.Context) {
	states, err := h.service.States(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, states)
}

// ========== GET: GET /api/v1/sliders/:key ==========
func (h *SliderHandler) Get(c *gin.Context) {
	state, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// ========== NAVIGATE: POST /api/v1/sliders/:key/navigate ==========
// Arrow click. Requests during the transition lock are accepted with
// 200 and dropped: the returned state shows the unchanged position.
func (h *SliderHandler) Navigate(c *gin.Context) {
	var req slider.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	state, err := h.service.Navigate(c.Request.Context(), c.Param("key"), req.Direction)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// ========== DOT CLICK: POST /api/v1/sliders/:key/dots/:index ==========
func (h *SliderHandler) ClickDot(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "index must be an integer")
		return
	}

	state, err := h.service.ClickDot(c.Request.Context(), c.Param("key"), index)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// ========== TOUCH: POST /api/v1/sliders/:key/touch ==========
func (h *SliderHandler) Touch(c *gin.Context) {
	var req slider.TouchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	state, err := h.service.Touch(c.Request.Context(), c.Param("key"), req.Phase, *req.X)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *SliderHandler) fail(c *gin.Context, err error) {
	status := slider.GetHTTPStatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Slider request failed")
	}
	response.ErrorResponse(c, status, slider.GetErrorCode(err), err.Error())
}
