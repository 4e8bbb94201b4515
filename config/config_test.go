package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.BirthdayLookaheadDays)
	assert.Equal(t, 3, cfg.BirthdayLimit)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 10, cfg.DefaultPageLimit)
	assert.Equal(t, 100, cfg.MaxPageLimit)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BIRTHDAY_LOOKAHEAD_DAYS", "7")
	t.Setenv("BIRTHDAY_LIMIT", "5")
	t.Setenv("DEFAULT_LOCALE", "RU")
	t.Setenv("FRONTEND_URL", "https://intranet.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7, cfg.BirthdayLookaheadDays)
	assert.Equal(t, 5, cfg.BirthdayLimit)
	assert.Equal(t, "ru", cfg.DefaultLocale)
	assert.Equal(t, "https://intranet.example.com", cfg.FrontendURL)
}

func TestLoadConfigClampsInvalidValues(t *testing.T) {
	t.Setenv("BIRTHDAY_LOOKAHEAD_DAYS", "-2")
	t.Setenv("BIRTHDAY_LIMIT", "not-a-number")
	t.Setenv("DEFAULT_PAGE_LIMIT", "0")
	t.Setenv("MAX_PAGE_LIMIT", "1")
	t.Setenv("UPLOAD_JPEG_QUALITY", "300")
	t.Setenv("RATE_LIMIT_GLOBAL_THRESHOLD", "0")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.BirthdayLookaheadDays)
	assert.Equal(t, 3, cfg.BirthdayLimit)
	assert.Equal(t, 10, cfg.DefaultPageLimit)
	assert.Equal(t, 10, cfg.MaxPageLimit)
	assert.Equal(t, 85, cfg.UploadJPEGQuality)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
}
