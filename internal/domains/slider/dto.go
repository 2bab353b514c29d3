package slider

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type TouchPhase string

const (
	TouchStart TouchPhase = "start"
	TouchEnd   TouchPhase = "end"
)

// NavigateRequest body of POST /sliders/:key/navigate
type NavigateRequest struct {
	Direction int `json:"direction" binding:"required"`
}

func (r NavigateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Direction, validation.In(-1, 1).Error(ErrInvalidDirection.Error())),
	)
}

// TouchRequest body of POST /sliders/:key/touch
type TouchRequest struct {
	Phase TouchPhase `json:"phase" binding:"required"`
	X     *float64   `json:"x" binding:"required"`
}

func (r TouchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phase, validation.In(TouchStart, TouchEnd).Error(ErrInvalidPhase.Error())),
	)
}
