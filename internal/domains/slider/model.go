package slider

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// SLIDER CONFIG (VALUE OBJECT)
// ========================================

// Config mô tả một carousel: folder chứa ảnh đánh số và số lượng slide.
// Count = 0 nghĩa là slider bị disable (Build không render gì).
type Config struct {
	Folder string `json:"folder"`
	Count  int    `json:"count"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Count, validation.Min(0)),
		validation.Field(&c.Folder, validation.When(c.Count > 0, validation.Required)),
	)
}

// Enabled reports whether the slider has anything to render.
func (c Config) Enabled() bool {
	return c.Count > 0
}

// Elements names the DOM targets owned by one slider instance.
type Elements struct {
	Container  string // element id holding the slides
	Dots       string // element id holding the dots
	SlideClass string
	DotClass   string
}

// Options are the timing and presentation constants shared by sliders.
type Options struct {
	AutoPlayInterval time.Duration
	Cooldown         time.Duration
	SwipeThreshold   float64

	AnchorClass     string // slides are inserted before this child
	ActiveDotClass  string
	SlideExtraClass string
	ImageExt        string
}

func DefaultOptions() Options {
	return Options{
		AutoPlayInterval: 4000 * time.Millisecond,
		Cooldown:         100 * time.Millisecond,
		SwipeThreshold:   50,
		AnchorClass:      "prev-arrow",
		ActiveDotClass:   "active-dot",
		SlideExtraClass:  "fade-slide",
		ImageExt:         "jpg",
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.AutoPlayInterval <= 0 {
		o.AutoPlayInterval = def.AutoPlayInterval
	}
	if o.Cooldown <= 0 {
		o.Cooldown = def.Cooldown
	}
	if o.SwipeThreshold <= 0 {
		o.SwipeThreshold = def.SwipeThreshold
	}
	if o.AnchorClass == "" {
		o.AnchorClass = def.AnchorClass
	}
	if o.ActiveDotClass == "" {
		o.ActiveDotClass = def.ActiveDotClass
	}
	if o.SlideExtraClass == "" {
		o.SlideExtraClass = def.SlideExtraClass
	}
	if o.ImageExt == "" {
		o.ImageExt = def.ImageExt
	}
	return o
}

// State is a read-only snapshot of one slider.
type State struct {
	Key             string `json:"key"`
	CurrentIndex    int    `json:"current_index"`
	Count           int    `json:"count"`
	Built           bool   `json:"built"`
	Transitioning   bool   `json:"transitioning"`
	AutoPlayPending bool   `json:"autoplay_pending"`
}
