package container

import (
	"context"
	"fmt"
	"os"

	"wedding-site/internal/config"
	"wedding-site/internal/domains/content"
	"wedding-site/internal/domains/page"
	pageHandler "wedding-site/internal/domains/page/handler"
	"wedding-site/internal/domains/slider"
	sliderHandler "wedding-site/internal/domains/slider/handler"
	"wedding-site/internal/infrastructure/realtime"
	"wedding-site/internal/infrastructure/render"
	"wedding-site/pkg/logger"
	"wedding-site/pkg/scheduler"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	Document *render.Document // page DOM, touched only on Loop
	Loop     *scheduler.Loop
	Hub      *realtime.Hub

	// ========================================
	// DOMAIN LAYER
	// ========================================
	Registry *slider.Registry
	Loader   *content.Loader
	Page     *page.Controller

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	PageHandler   *pageHandler.PageHandler
	SliderHandler *sliderHandler.SliderHandler

	cancelLoop context.CancelFunc
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config
// 2. Infrastructure (page document, event loop, websocket hub)
// 3. Domain (registry, content loader, page controller)
// 4. Handlers
// 5. Start: event loop chạy, content được load đúng MỘT lần
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.Log.Level)

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to init infrastructure: %w", err)
	}

	// ========================================
	// STEP 3: DOMAIN
	// ========================================
	c.initDomain()

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.PageHandler = pageHandler.NewPageHandler(c.Page, c.Hub, cfg.App.Version)
	c.SliderHandler = sliderHandler.NewSliderHandler(c.Page)

	// ========================================
	// STEP 5: START PAGE SESSION
	// ========================================
	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancelLoop = cancel
	go c.Loop.Run(loopCtx)

	if err := c.Page.Start(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to start page: %w", err)
	}

	logger.Info("Container initialized", map[string]interface{}{
		"environment":    cfg.App.Environment,
		"content_loaded": c.Page.ContentLoaded(),
		"sliders":        c.Registry.Keys(),
	})
	return c, nil
}

func (c *Container) initInfrastructure() error {
	f, err := os.Open(c.Config.Site.PageFile)
	if err != nil {
		return fmt.Errorf("failed to open page %s: %w", c.Config.Site.PageFile, err)
	}
	defer f.Close()

	doc, err := render.ParseDocument(f)
	if err != nil {
		return err
	}

	c.Document = doc
	c.Loop = scheduler.NewLoop(256)
	c.Hub = realtime.NewHub()
	return nil
}

func (c *Container) initDomain() {
	opts := slider.DefaultOptions()
	opts.AutoPlayInterval = c.Config.Slider.AutoPlayInterval
	opts.Cooldown = c.Config.Slider.Cooldown
	opts.SwipeThreshold = c.Config.Slider.SwipeThreshold

	regions := content.DefaultRegions()
	regions.BioPeople = c.Config.Site.BioPeople

	c.Registry = slider.NewRegistry()
	c.Loader = content.NewLoader(
		content.NewFileSource(c.Config.Site.ContentFile),
		c.Document,
		c.Loop,
		c.Registry,
		regions,
		content.DefaultSliders(),
		opts,
	)
	c.Page = page.NewController(c.Document, c.Loop, c.Loader, c.Registry, c.Hub)
}

// Cleanup stops the event loop and disconnects viewers.
func (c *Container) Cleanup() {
	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.cancelLoop != nil {
		c.cancelLoop()
	}
}
