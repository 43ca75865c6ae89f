package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"courtwatch-backend/models"
)

var (
	ErrMissingGeminiKey    = errors.New("GEMINI_API_KEY not set")
	ErrInvalidShortVerdict = errors.New("invalid SHORT_TEXT_VERDICT")
)

const (
	defaultBaseURL        = "https://www.courtlistener.com/api/rest/v3"
	defaultCourt          = "scotus"
	defaultModel          = "gemini-2.0-flash"
	defaultLookbackDays   = 30
	defaultMaxRecords     = 10
	defaultMaxTextChars   = 15000
	defaultMinTextChars   = 200
	defaultMaxAttempts    = 2
	defaultPacingDelay    = 2 * time.Second
	defaultCooldown       = 30 * time.Second
	defaultLookupInterval = 250 * time.Millisecond
	defaultCSVPath        = "supreme_court_decisions.csv"
	defaultJSONPath       = "supreme_court_decisions.json"
)

// Config holds all pipeline configuration, loaded from the environment
type Config struct {
	// Credentials
	GeminiAPIKey       string
	CourtListenerToken string

	// Decision source
	CourtListenerURL string
	Court            string
	LookbackDays     int
	MaxRecords       int
	MaxTextChars     int
	LookupInterval   time.Duration

	// Classification
	GeminiModel      string
	MinTextChars     int
	ShortTextVerdict string
	MaxAttempts      int
	Cooldown         time.Duration
	PacingDelay      time.Duration

	// Output stores
	CSVPath  string
	JSONPath string
}

// Load reads configuration from the environment. The Gemini key is
// required; everything else has a default. Returns before any network
// call when a required credential is missing.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:       CleanEnv("GEMINI_API_KEY"),
		CourtListenerToken: CleanEnv("COURTLISTENER_TOKEN"),
		CourtListenerURL:   getString("COURTLISTENER_URL", defaultBaseURL),
		Court:              getString("COURT_ID", defaultCourt),
		LookbackDays:       getInt("LOOKBACK_DAYS", defaultLookbackDays),
		MaxRecords:         getInt("MAX_RECORDS", defaultMaxRecords),
		MaxTextChars:       getInt("MAX_TEXT_CHARS", defaultMaxTextChars),
		LookupInterval:     getDuration("LOOKUP_INTERVAL", defaultLookupInterval),
		GeminiModel:        getString("GEMINI_MODEL", defaultModel),
		MinTextChars:       getInt("MIN_TEXT_CHARS", defaultMinTextChars),
		ShortTextVerdict:   getString("SHORT_TEXT_VERDICT", models.ClassificationInsufficient),
		MaxAttempts:        getInt("MAX_ATTEMPTS", defaultMaxAttempts),
		Cooldown:           getDuration("RATE_LIMIT_COOLDOWN", defaultCooldown),
		PacingDelay:        getDuration("PACING_DELAY", defaultPacingDelay),
		CSVPath:            getString("CSV_PATH", defaultCSVPath),
		JSONPath:           getString("JSON_PATH", defaultJSONPath),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingGeminiKey
	}

	switch cfg.ShortTextVerdict {
	case models.ClassificationInsufficient, models.ClassificationError, models.ClassificationUnknown:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidShortVerdict, cfg.ShortTextVerdict)
	}

	return cfg, nil
}

// CSVPathFromEnv returns the tabular store path without requiring full
// pipeline configuration. Used by the read-only tools.
func CSVPathFromEnv() string {
	return getString("CSV_PATH", defaultCSVPath)
}

// JSONPathFromEnv returns the structured store path without requiring
// full pipeline configuration
func JSONPathFromEnv() string {
	return getString("JSON_PATH", defaultJSONPath)
}

// CleanEnv retrieves an environment variable and strips stray quotes and
// whitespace, which show up when keys are pasted into .env files
func CleanEnv(key string) string {
	val := strings.TrimSpace(os.Getenv(key))
	val = strings.ReplaceAll(val, `"`, "")
	val = strings.ReplaceAll(val, "'", "")
	return val
}

func getString(key, fallback string) string {
	if val := CleanEnv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val := CleanEnv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := CleanEnv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
