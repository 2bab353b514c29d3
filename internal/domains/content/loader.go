package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"wedding-site/internal/domains/content/model"
	"wedding-site/internal/domains/slider"
	"wedding-site/internal/infrastructure/render"
	"wedding-site/pkg/scheduler"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Page is the render surface the loader populates.
type Page interface {
	slider.Target
	SetText(id, text string) error
	SetHTML(id, raw string) error
	SetFragments(id string, frags []render.Element) error
	ChildIDByClass(parentID, class string) (string, bool)
}

// Regions names the page elements the loader fills.
type Regions struct {
	HeroTitle      string
	HeroDate       string
	Greeting       string
	Profiles       string
	Story          string
	BioSuffix      string   // biography list id = <person> + BioSuffix
	BioPeople      []string // people whose biography lists must be rendered
	LoadingOverlay string
	PrevArrowClass string
	NextArrowClass string
}

func DefaultRegions() Regions {
	return Regions{
		HeroTitle:      "hero-title",
		HeroDate:       "hero-date",
		Greeting:       "greeting-text",
		Profiles:       "profile-list",
		Story:          "story-list",
		BioSuffix:      "-bio-list",
		BioPeople:      []string{"yuki", "moka"},
		LoadingOverlay: "loadingOverlay",
		PrevArrowClass: "prev-arrow",
		NextArrowClass: "next-arrow",
	}
}

// SliderSpec binds a slider key to its DOM targets and default config.
type SliderSpec struct {
	Key      string
	Elements slider.Elements
	Default  slider.Config
}

// DefaultSliders are the page's two carousels, both disabled until the
// content document says otherwise.
func DefaultSliders() []SliderSpec {
	return []SliderSpec{
		{
			Key: "memories",
			Elements: slider.Elements{
				Container: "slideshow", Dots: "dotsMemories",
				SlideClass: "mySlides", DotClass: "dot",
			},
			Default: slider.Config{Folder: "images/memories", Count: 0},
		},
		{
			Key: "preshoot",
			Elements: slider.Elements{
				Container: "slideshowPre", Dots: "dotsPreshoot",
				SlideClass: "mySlidesPre", DotClass: "dotPre",
			},
			Default: slider.Config{Folder: "images/preshoot", Count: 0},
		},
	}
}

// ========================================
// LOADER
// ========================================

type Loader struct {
	source   Source
	page     Page
	sched    scheduler.Scheduler
	registry *slider.Registry
	regions  Regions
	sliders  []SliderSpec
	opts     slider.Options

	mu      sync.RWMutex
	loaded  bool
	lastErr error
}

func NewLoader(
	source Source,
	page Page,
	sched scheduler.Scheduler,
	registry *slider.Registry,
	regions Regions,
	sliders []SliderSpec,
	opts slider.Options,
) *Loader {
	return &Loader{
		source:   source,
		page:     page,
		sched:    sched,
		registry: registry,
		regions:  regions,
		sliders:  sliders,
		opts:     opts,
	}
}

// Load performs the single fetch and decodes the document.
// It does not touch the page, so it may run off the event loop.
func (l *Loader) Load(ctx context.Context) (*model.Document, error) {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	return &doc, nil
}

// Apply renders doc into the page and builds the sliders. loadErr is the
// outcome of Load; either way the loading overlay is hidden at the end.
// Must run on the page event loop.
func (l *Loader) Apply(doc *model.Document, loadErr error) error {
	err := loadErr
	if err == nil {
		err = l.populate(doc)
	}

	if err != nil {
		log.Error().Err(err).Msg("Config load error")
	}
	l.setResult(err)

	l.hideLoading()
	return err
}

// Init is Load followed by Apply on the caller's goroutine.
func (l *Loader) Init(ctx context.Context) error {
	doc, err := l.Load(ctx)
	return l.Apply(doc, err)
}

func (l *Loader) populate(doc *model.Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content render panicked: %v", r)
		}
	}()

	c := doc.Content

	// 1. Hero
	if err := l.page.SetText(l.regions.HeroTitle, c.Hero.Names); err != nil {
		return regionErr(err)
	}
	if err := l.page.SetText(l.regions.HeroDate, c.Hero.Date+" | "+c.Hero.Venue); err != nil {
		return regionErr(err)
	}

	// 2. Greeting
	if err := l.page.SetHTML(l.regions.Greeting, c.Greeting.Text); err != nil {
		return regionErr(err)
	}

	// 3. Profiles
	if err := l.page.SetFragments(l.regions.Profiles, profileFragments(c.Profiles)); err != nil {
		return regionErr(err)
	}

	// 4. Biography
	for _, person := range l.regions.BioPeople {
		entries, ok := c.Biography[person]
		if !ok {
			return fmt.Errorf("%w: biography.%s", ErrMissingField, person)
		}
		if err := l.page.SetFragments(person+l.regions.BioSuffix, bioFragments(entries)); err != nil {
			return regionErr(err)
		}
	}

	// 5. Our story
	if err := l.page.SetFragments(l.regions.Story, storyFragments(c.Story)); err != nil {
		return regionErr(err)
	}

	// 6. Sliders
	if doc.Sliders != nil {
		l.initSliders(doc.Sliders)
	}

	log.Info().
		Int("profiles", len(c.Profiles)).
		Int("story", len(c.Story)).
		Strs("sliders", l.registry.Keys()).
		Msg("Content rendered")
	return nil
}

// initSliders merges the document's slider configs over the defaults by
// key, then constructs and builds every configured slider.
func (l *Loader) initSliders(overrides map[string]slider.Config) {
	merged := make(map[string]slider.Config, len(l.sliders)+len(overrides))
	for _, spec := range l.sliders {
		merged[spec.Key] = spec.Default
	}
	for key, cfg := range overrides {
		merged[key] = cfg
	}

	unknown := make([]string, 0)
	for key := range overrides {
		if !l.hasSpec(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		log.Warn().Strs("keys", unknown).Msg("Ignoring sliders without a page target")
	}

	for _, spec := range l.sliders {
		cfg := merged[spec.Key]
		if err := cfg.Validate(); err != nil {
			log.Warn().Err(err).Str("slider", spec.Key).Msg("Invalid slider config, slider disabled")
			cfg = slider.Config{Folder: cfg.Folder, Count: 0}
		}

		s := slider.New(spec.Key, cfg, spec.Elements, l.page, l.sched, l.opts)
		l.registry.Register(s)
		s.Build()
		l.wireArrows(spec)
	}
}

func (l *Loader) hasSpec(key string) bool {
	for _, spec := range l.sliders {
		if spec.Key == key {
			return true
		}
	}
	return false
}

// wireArrows connects the container's prev/next arrows to registry
// navigation for this slider key.
func (l *Loader) wireArrows(spec SliderSpec) {
	key := spec.Key
	if id, ok := l.page.ChildIDByClass(spec.Elements.Container, l.regions.PrevArrowClass); ok {
		l.page.Listen(id, render.EventClick, func(render.Event) { l.registry.Navigate(key, -1) })
	}
	if id, ok := l.page.ChildIDByClass(spec.Elements.Container, l.regions.NextArrowClass); ok {
		l.page.Listen(id, render.EventClick, func(render.Event) { l.registry.Navigate(key, 1) })
	}
}

func (l *Loader) hideLoading() {
	if err := l.page.SetVisible(l.regions.LoadingOverlay, false); err != nil {
		log.Warn().Err(err).Msg("Loading overlay not found")
	}
}

func (l *Loader) setResult(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = err == nil
	l.lastErr = err
}

// Loaded reports whether the last Apply rendered the content.
func (l *Loader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// LastError returns the error of the last Apply, if any.
func (l *Loader) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

func regionErr(err error) error {
	if errors.Is(err, render.ErrElementNotFound) {
		return fmt.Errorf("%w: %v", ErrRegionMissing, err)
	}
	return err
}
