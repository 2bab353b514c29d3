package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App    AppConfig
	Site   SiteConfig
	Slider SliderConfig
	Log    LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// SiteConfig points at the static page and its content document.
type SiteConfig struct {
	StaticDir   string   // served as-is (images, css)
	PageFile    string   // static HTML page, parsed once at startup
	ContentFile string   // JSON content document, read once
	BioPeople   []string // biography lists rendered from the document
}

// SliderConfig holds the carousel timing constants.
type SliderConfig struct {
	AutoPlayInterval time.Duration
	Cooldown         time.Duration
	SwipeThreshold   float64
}

type LogConfig struct {
	Level string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	staticDir := getEnv("SITE_STATIC_DIR", "web")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Wedding Site"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Site: SiteConfig{
			StaticDir:   staticDir,
			PageFile:    getEnv("SITE_PAGE_FILE", staticDir+"/index.html"),
			ContentFile: getEnv("SITE_CONTENT_FILE", staticDir+"/config.json"),
			BioPeople:   getEnvList("SITE_BIO_PEOPLE", []string{"yuki", "moka"}),
		},
		Slider: SliderConfig{
			AutoPlayInterval: time.Duration(getEnvInt("SLIDER_AUTOPLAY_MS", 4000)) * time.Millisecond,
			Cooldown:         time.Duration(getEnvInt("SLIDER_COOLDOWN_MS", 100)) * time.Millisecond,
			SwipeThreshold:   float64(getEnvInt("SLIDER_SWIPE_THRESHOLD", 50)),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Site.PageFile == "" {
		return fmt.Errorf("SITE_PAGE_FILE must not be empty")
	}
	if c.Site.ContentFile == "" {
		return fmt.Errorf("SITE_CONTENT_FILE must not be empty")
	}
	if c.Slider.AutoPlayInterval <= 0 {
		return fmt.Errorf("SLIDER_AUTOPLAY_MS must be positive")
	}
	if c.Slider.Cooldown <= 0 {
		return fmt.Errorf("SLIDER_COOLDOWN_MS must be positive")
	}
	if c.Slider.Cooldown >= c.Slider.AutoPlayInterval {
		return fmt.Errorf("SLIDER_COOLDOWN_MS must be shorter than SLIDER_AUTOPLAY_MS")
	}
	if c.Slider.SwipeThreshold <= 0 {
		return fmt.Errorf("SLIDER_SWIPE_THRESHOLD must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
