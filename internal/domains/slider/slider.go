package slider

import (
	"fmt"
	"math"

	"wedding-site/internal/infrastructure/render"
	"wedding-site/pkg/scheduler"

	"github.com/rs/zerolog/log"
)

// Target is the render surface a slider draws on.
// *render.Document implements it.
type Target interface {
	Exists(id string) bool
	Clear(parentID, class string) error
	Insert(parentID, anchorClass string, el render.Element) error
	SetVisible(id string, visible bool) error
	SetClass(id, class string, on bool) error
	Listen(id string, kind render.EventKind, fn render.Listener)
}

// ========================================
// SLIDER
// ========================================
// State machine: Idle -> Transitioning (accepted Show)
//                Transitioning -> Idle (cooldown elapsed, autoplay re-armed)
//
// Mọi method phải được gọi trên event loop của page.

type Slider struct {
	key   string
	cfg   Config
	els   Elements
	opts  Options
	view  Target
	sched scheduler.Scheduler

	slideIDs []string
	dotIDs   []string

	currentIndex    int
	isTransitioning bool
	timer           scheduler.Handle
	touchStartX     float64

	onChange []func(State)
}

// New creates a slider. cfg is copied and never changes afterwards.
func New(key string, cfg Config, els Elements, view Target, sched scheduler.Scheduler, opts Options) *Slider {
	return &Slider{
		key:          key,
		cfg:          cfg,
		els:          els,
		opts:         opts.withDefaults(),
		view:         view,
		sched:        sched,
		currentIndex: 1,
	}
}

func (s *Slider) Key() string        { return s.key }
func (s *Slider) Config() Config     { return s.cfg }
func (s *Slider) Elements() Elements { return s.els }

// OnChange registers an observer notified after every accepted Show.
func (s *Slider) OnChange(fn func(State)) {
	s.onChange = append(s.onChange, fn)
}

// ImagePath returns the asset path of 1-based slide i.
func (s *Slider) ImagePath(i int) string {
	return fmt.Sprintf("%s/%02d.%s", s.cfg.Folder, i, s.opts.ImageExt)
}

// Build materialises slides and dots and wires touch listeners.
//
// It returns false, touching nothing, when a container is missing or the
// slider is disabled. Calling Build twice registers listeners twice.
func (s *Slider) Build() bool {
	if !s.view.Exists(s.els.Container) || !s.view.Exists(s.els.Dots) || s.cfg.Count == 0 {
		return false
	}

	if err := s.view.Clear(s.els.Container, s.els.SlideClass); err != nil {
		log.Error().Err(err).Str("slider", s.key).Msg("Failed to clear slides")
		return false
	}
	if err := s.view.Clear(s.els.Dots, ""); err != nil {
		log.Error().Err(err).Str("slider", s.key).Msg("Failed to clear dots")
		return false
	}

	s.slideIDs = make([]string, 0, s.cfg.Count)
	s.dotIDs = make([]string, 0, s.cfg.Count)

	for i := 1; i <= s.cfg.Count; i++ {
		id := fmt.Sprintf("%s-slide-%02d", s.els.Container, i)
		slide := render.Element{
			Tag:     "div",
			ID:      id,
			Classes: []string{s.els.SlideClass, s.opts.SlideExtraClass},
			Children: []render.Element{
				render.El("img").WithAttr("src", s.ImagePath(i)).WithAttr("loading", "lazy"),
			},
		}
		if err := s.view.Insert(s.els.Container, s.opts.AnchorClass, slide); err != nil {
			log.Error().Err(err).Str("slider", s.key).Msg("Failed to insert slide")
			return false
		}
		s.slideIDs = append(s.slideIDs, id)
	}

	for i := 1; i <= s.cfg.Count; i++ {
		id := fmt.Sprintf("%s-dot-%02d", s.els.Dots, i)
		dot := render.Element{Tag: "button", ID: id, Classes: []string{s.els.DotClass}}
		if err := s.view.Insert(s.els.Dots, "", dot); err != nil {
			log.Error().Err(err).Str("slider", s.key).Msg("Failed to insert dot")
			return false
		}
		index := i
		s.view.Listen(id, render.EventClick, func(render.Event) { s.GoToSlide(index) })
		s.dotIDs = append(s.dotIDs, id)
	}

	s.currentIndex = 1
	s.paint(1)
	s.setupEventListeners()

	log.Info().Str("slider", s.key).Int("count", s.cfg.Count).Str("folder", s.cfg.Folder).Msg("Slider built")
	return true
}

func (s *Slider) setupEventListeners() {
	s.view.Listen(s.els.Container, render.EventTouchStart, func(ev render.Event) {
		s.TouchStart(ev.X)
	})
	s.view.Listen(s.els.Container, render.EventTouchEnd, func(ev render.Event) {
		s.TouchEnd(ev.X)
	})
}

// TouchStart records the gesture origin and suspends autoplay.
func (s *Slider) TouchStart(x float64) {
	s.touchStartX = x
	s.StopAutoPlay()
}

// TouchEnd navigates when the horizontal travel exceeds the threshold.
// Autoplay resumes whether or not navigation happened, and also when the
// gesture ends inside a transition window.
func (s *Slider) TouchEnd(x float64) {
	if !s.isTransitioning {
		diff := s.touchStartX - x
		if math.Abs(diff) > s.opts.SwipeThreshold {
			if diff > 0 {
				s.Navigate(1)
			} else {
				s.Navigate(-1)
			}
		}
	}
	s.StartAutoPlay()
}

// Navigate moves relative to the current slide unless a transition is in
// progress, in which case the request is dropped.
func (s *Slider) Navigate(direction int) {
	if !s.isTransitioning {
		s.Show(s.currentIndex + direction)
	}
}

// GoToSlide jumps to a 1-based position, same gate as Navigate.
func (s *Slider) GoToSlide(index int) {
	if !s.isTransitioning {
		s.Show(index)
	}
}

// Show resolves n with wraparound, repaints and starts the cooldown.
func (s *Slider) Show(n int) {
	count := len(s.slideIDs)
	if count == 0 {
		return
	}

	switch {
	case n > count:
		s.currentIndex = 1
	case n < 1:
		s.currentIndex = count
	default:
		s.currentIndex = n
	}

	s.paint(s.currentIndex)

	s.isTransitioning = true
	s.sched.Schedule(s.opts.Cooldown, func() {
		s.isTransitioning = false
		s.StartAutoPlay()
	})

	state := s.State()
	for _, fn := range s.onChange {
		fn(state)
	}
}

// paint makes exactly one slide visible and one dot active.
func (s *Slider) paint(active int) {
	for _, id := range s.slideIDs {
		if err := s.view.SetVisible(id, false); err != nil {
			log.Warn().Err(err).Str("slider", s.key).Msg("Failed to hide slide")
		}
	}
	for _, id := range s.dotIDs {
		if err := s.view.SetClass(id, s.opts.ActiveDotClass, false); err != nil {
			log.Warn().Err(err).Str("slider", s.key).Msg("Failed to deactivate dot")
		}
	}

	if err := s.view.SetVisible(s.slideIDs[active-1], true); err != nil {
		log.Warn().Err(err).Str("slider", s.key).Msg("Failed to show slide")
	}
	if err := s.view.SetClass(s.dotIDs[active-1], s.opts.ActiveDotClass, true); err != nil {
		log.Warn().Err(err).Str("slider", s.key).Msg("Failed to activate dot")
	}
}

// StartAutoPlay replaces any pending advance with a fresh one.
func (s *Slider) StartAutoPlay() {
	s.StopAutoPlay()
	s.timer = s.sched.Schedule(s.opts.AutoPlayInterval, func() {
		s.timer = 0
		s.Show(s.currentIndex + 1)
	})
}

// StopAutoPlay cancels the pending advance, if any.
func (s *Slider) StopAutoPlay() {
	if s.timer != 0 {
		s.sched.Cancel(s.timer)
	}
	s.timer = 0
}

// State returns a snapshot.
func (s *Slider) State() State {
	return State{
		Key:             s.key,
		CurrentIndex:    s.currentIndex,
		Count:           s.cfg.Count,
		Built:           len(s.slideIDs) > 0,
		Transitioning:   s.isTransitioning,
		AutoPlayPending: s.timer != 0,
	}
}

// SlideIDs returns the rendered slide element ids, in position order.
func (s *Slider) SlideIDs() []string { return append([]string(nil), s.slideIDs...) }

// DotIDs returns the rendered dot element ids, in position order.
func (s *Slider) DotIDs() []string { return append([]string(nil), s.dotIDs...) }
