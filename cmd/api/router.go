package main

import (
	"path/filepath"

	"wedding-site/internal/shared/middleware"
	"wedding-site/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger("/images", "/assets"),
	)

	// ========================================
	// PAGE
	// ========================================
	router.GET("/", c.PageHandler.Index)
	router.GET("/ws", c.PageHandler.Stream)
	router.Static("/images", filepath.Join(c.Config.Site.StaticDir, "images"))
	router.Static("/assets", filepath.Join(c.Config.Site.StaticDir, "assets"))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", c.PageHandler.Health)
		setupSliderRoutes(v1, c)
	}

	return router
}

// ========================================
// SLIDER ROUTES
// ========================================
// Thay cho plusSlides()/plusSlidesPre(): mọi gesture đi qua registry
func setupSliderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	sliders := v1.Group("/sliders")
	{
		sliders.GET("", c.SliderHandler.List)
		sliders.GET("/:key", c.SliderHandler.Get)
		sliders.POST("/:key/navigate", c.SliderHandler.Navigate)
		sliders.POST("/:key/dots/:index", c.SliderHandler.ClickDot)
		sliders.POST("/:key/touch", c.SliderHandler.Touch)
	}
}
