package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "web/index.html", cfg.Site.PageFile)
	assert.Equal(t, "web/config.json", cfg.Site.ContentFile)
	assert.Equal(t, []string{"yuki", "moka"}, cfg.Site.BioPeople)
	assert.Equal(t, 4000*time.Millisecond, cfg.Slider.AutoPlayInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Slider.Cooldown)
	assert.Equal(t, 50.0, cfg.Slider.SwipeThreshold)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SITE_STATIC_DIR", "/srv/site")
	t.Setenv("SITE_BIO_PEOPLE", "anna, ben ,")
	t.Setenv("SLIDER_AUTOPLAY_MS", "6000")
	t.Setenv("SLIDER_SWIPE_THRESHOLD", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/site/index.html", cfg.Site.PageFile)
	assert.Equal(t, "/srv/site/config.json", cfg.Site.ContentFile)
	assert.Equal(t, []string{"anna", "ben"}, cfg.Site.BioPeople)
	assert.Equal(t, 6*time.Second, cfg.Slider.AutoPlayInterval)
	assert.Equal(t, 50.0, cfg.Slider.SwipeThreshold)
}

func TestLoad_RejectsCooldownLongerThanInterval(t *testing.T) {
	t.Setenv("SLIDER_AUTOPLAY_MS", "100")
	t.Setenv("SLIDER_COOLDOWN_MS", "200")

	_, err := Load()
	assert.Error(t, err)
}
