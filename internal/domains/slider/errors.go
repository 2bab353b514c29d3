package slider

import (
	"errors"
	"net/http"
)

// ============================================================
// SENTINEL ERRORS
// ============================================================
// Navigation trong lúc transition lock KHÔNG phải là error: request bị drop.
// Các error dưới đây chỉ dành cho HTTP layer.

var (
	ErrSliderNotFound   = errors.New("slider not found")
	ErrSliderNotBuilt   = errors.New("slider is not rendered")
	ErrInvalidDirection = errors.New("direction must be -1 or 1")
	ErrInvalidIndex     = errors.New("slide index out of range")
	ErrInvalidPhase     = errors.New("touch phase must be start or end")
)

// GetHTTPStatusCode maps slider errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrSliderNotFound), errors.Is(err, ErrSliderNotBuilt):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidDirection),
		errors.Is(err, ErrInvalidIndex),
		errors.Is(err, ErrInvalidPhase):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode returns the response error code for err.
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrSliderNotFound):
		return "SLIDER_NOT_FOUND"
	case errors.Is(err, ErrSliderNotBuilt):
		return "SLIDER_NOT_BUILT"
	case errors.Is(err, ErrInvalidDirection),
		errors.Is(err, ErrInvalidIndex),
		errors.Is(err, ErrInvalidPhase):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
