package config

import (
	"testing"
	"time"

	"courtwatch-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingGeminiKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.courtlistener.com/api/rest/v3", cfg.CourtListenerURL)
	assert.Equal(t, "scotus", cfg.Court)
	assert.Equal(t, 30, cfg.LookbackDays)
	assert.Equal(t, 10, cfg.MaxRecords)
	assert.Equal(t, 15000, cfg.MaxTextChars)
	assert.Equal(t, 200, cfg.MinTextChars)
	assert.Equal(t, models.ClassificationInsufficient, cfg.ShortTextVerdict)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Cooldown)
	assert.Equal(t, 2*time.Second, cfg.PacingDelay)
	assert.Equal(t, "supreme_court_decisions.csv", cfg.CSVPath)
	assert.Equal(t, "supreme_court_decisions.json", cfg.JSONPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("COURT_ID", "ca9")
	t.Setenv("LOOKBACK_DAYS", "7")
	t.Setenv("MAX_RECORDS", "25")
	t.Setenv("PACING_DELAY", "500ms")
	t.Setenv("SHORT_TEXT_VERDICT", models.ClassificationUnknown)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ca9", cfg.Court)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.Equal(t, 25, cfg.MaxRecords)
	assert.Equal(t, 500*time.Millisecond, cfg.PacingDelay)
	assert.Equal(t, models.ClassificationUnknown, cfg.ShortTextVerdict)
}

func TestLoadRejectsUnknownShortTextVerdict(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SHORT_TEXT_VERDICT", "Maybe")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidShortVerdict)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LOOKBACK_DAYS", "soon")
	t.Setenv("PACING_DELAY", "fast")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.LookbackDays)
	assert.Equal(t, 2*time.Second, cfg.PacingDelay)
}

func TestCleanEnvStripsQuotesAndWhitespace(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{`"AIzaSyExample"`, "AIzaSyExample"},
		{`'AIzaSyExample'`, "AIzaSyExample"},
		{"  AIzaSyExample  ", "AIzaSyExample"},
		{`" AIzaSyExample "`, " AIzaSyExample "},
		{"", ""},
	}
	for _, tt := range tests {
		t.Setenv("CLEAN_ENV_TEST", tt.raw)
		assert.Equal(t, tt.want, CleanEnv("CLEAN_ENV_TEST"), "raw=%q", tt.raw)
	}
}
