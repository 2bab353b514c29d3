package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"wedding-site/internal/domains/content"
	"wedding-site/internal/domains/slider"
	"wedding-site/internal/infrastructure/render"
	"wedding-site/pkg/scheduler"

	"github.com/rs/zerolog/log"
)

// Publisher receives slider state changes (websocket hub).
type Publisher interface {
	Publish(v interface{})
}

// Controller owns the page session: the DOM, the event loop it is
// mutated on, the content loader and the slider registry.
type Controller struct {
	doc       *render.Document
	loop      *scheduler.Loop
	loader    *content.Loader
	registry  *slider.Registry
	publisher Publisher

	startOnce sync.Once
	startErr  error
}

func NewController(
	doc *render.Document,
	loop *scheduler.Loop,
	loader *content.Loader,
	registry *slider.Registry,
	publisher Publisher,
) *Controller {
	return &Controller{
		doc:       doc,
		loop:      loop,
		loader:    loader,
		registry:  registry,
		publisher: publisher,
	}
}

// Start runs the content loader once: the fetch happens off the loop,
// rendering and slider construction on it. The loop must be running.
//
// A content failure is logged and recorded but not returned: the page is
// served either way. Only an unusable loop is an error.
func (p *Controller) Start(ctx context.Context) error {
	p.startOnce.Do(func() {
		doc, loadErr := p.loader.Load(ctx)

		p.startErr = p.loop.Do(ctx, func() {
			if err := p.loader.Apply(doc, loadErr); err != nil {
				return
			}
			p.observeSliders()
		})
	})
	return p.startErr
}

func (p *Controller) observeSliders() {
	if p.publisher == nil {
		return
	}
	for _, key := range p.registry.Keys() {
		s, err := p.registry.Get(key)
		if err != nil {
			continue
		}
		s.OnChange(func(st slider.State) { p.publisher.Publish(st) })
	}
}

// ContentLoaded reports whether the content document was rendered.
func (p *Controller) ContentLoaded() bool {
	return p.loader.Loaded()
}

// ContentError returns the content load failure, if any.
func (p *Controller) ContentError() error {
	return p.loader.LastError()
}

// Render writes the current page HTML.
func (p *Controller) Render(ctx context.Context, w io.Writer) error {
	var buf bytes.Buffer
	var renderErr error

	if err := p.loop.Do(ctx, func() { renderErr = p.doc.Render(&buf) }); err != nil {
		return err
	}
	if renderErr != nil {
		return fmt.Errorf("failed to render page: %w", renderErr)
	}

	_, err := buf.WriteTo(w)
	return err
}

// ========================================
// slider.Service
// ========================================

func (p *Controller) States(ctx context.Context) ([]slider.State, error) {
	var states []slider.State
	if err := p.loop.Do(ctx, func() { states = p.registry.States() }); err != nil {
		return nil, err
	}
	return states, nil
}

func (p *Controller) Get(ctx context.Context, key string) (slider.State, error) {
	return p.withSlider(ctx, key, func(s *slider.Slider) error { return nil })
}

func (p *Controller) Navigate(ctx context.Context, key string, direction int) (slider.State, error) {
	if direction != -1 && direction != 1 {
		return slider.State{}, slider.ErrInvalidDirection
	}
	return p.withSlider(ctx, key, func(s *slider.Slider) error {
		p.registry.Navigate(key, direction)
		return nil
	})
}

func (p *Controller) ClickDot(ctx context.Context, key string, index int) (slider.State, error) {
	return p.withSlider(ctx, key, func(s *slider.Slider) error {
		dots := s.DotIDs()
		if len(dots) == 0 {
			return fmt.Errorf("%w: %s", slider.ErrSliderNotBuilt, key)
		}
		if index < 1 || index > len(dots) {
			return fmt.Errorf("%w: %d not in [1, %d]", slider.ErrInvalidIndex, index, len(dots))
		}
		return p.doc.Dispatch(dots[index-1], render.Event{Kind: render.EventClick})
	})
}

func (p *Controller) Touch(ctx context.Context, key string, phase slider.TouchPhase, x float64) (slider.State, error) {
	var kind render.EventKind
	switch phase {
	case slider.TouchStart:
		kind = render.EventTouchStart
	case slider.TouchEnd:
		kind = render.EventTouchEnd
	default:
		return slider.State{}, slider.ErrInvalidPhase
	}

	return p.withSlider(ctx, key, func(s *slider.Slider) error {
		if !s.State().Built {
			return fmt.Errorf("%w: %s", slider.ErrSliderNotBuilt, key)
		}
		return p.doc.Dispatch(s.Elements().Container, render.Event{Kind: kind, X: x})
	})
}

// withSlider runs fn on the loop against the keyed slider and returns the
// slider's state afterwards.
func (p *Controller) withSlider(ctx context.Context, key string, fn func(s *slider.Slider) error) (slider.State, error) {
	var (
		state slider.State
		opErr error
	)

	err := p.loop.Do(ctx, func() {
		s, err := p.registry.Get(key)
		if err != nil {
			opErr = err
			return
		}
		if opErr = fn(s); opErr != nil {
			return
		}
		state = s.State()
	})
	if err != nil {
		log.Error().Err(err).Str("slider", key).Msg("Event loop unavailable")
		return slider.State{}, err
	}
	return state, opErr
}

var _ slider.Service = (*Controller)(nil)
