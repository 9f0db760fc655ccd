// Package config provides application configuration management.
// It loads settings from environment variables (with optional .env support)
// and provides validated defaults for delays, rate limits, business hours
// and external service credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// WhatsApp gateway (external bridge that owns the session)
	GatewayURL   string
	GatewayToken string

	// Server
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	Timezone        string // IANA name used for business hours and daily resets

	// Data
	DataDir string

	// Anti-block behavior
	Delays   DelayConfig
	Limits   LimitConfig
	Schedule ScheduleConfig

	// Conversation
	IdentityMaxRetries int
	DedupWindow        time.Duration
	DedupMaxEntries    int

	// LLM classification
	LLM LLMConfig

	// Observability
	SentryDSN           string
	SentryEnvironment   string
	BetterStackToken    string
	BetterStackEndpoint string
	MetricsUsername     string
	MetricsPassword     string
}

// DelayConfig holds the human-plausible delay bounds.
// All values are wall-clock durations applied before sending.
type DelayConfig struct {
	ReadPerChar   time.Duration // per-character reading cost
	MinRead       time.Duration
	MaxRead       time.Duration
	TypingBase    time.Duration // fixed cost before per-character typing
	TypingPerChar time.Duration
	MinTyping     time.Duration
	MaxTyping     time.Duration
	ReadJitter    time.Duration // upper bound of random addition to read delay
	TypingJitter  time.Duration // upper bound of random addition to typing delay
}

// LimitConfig holds the advisory send caps.
type LimitConfig struct {
	MaxPerDay    int // global daily cap
	MaxPerHour   int // global hourly cap
	MaxPerSender int // per-sender cap within a trailing hour
}

// DayWindow is one weekday's attendance window. [Start, End) in local hours.
type DayWindow struct {
	Enabled bool
	Start   int
	End     int
}

// ScheduleConfig maps weekdays to attendance windows.
// Index is time.Weekday (Sunday = 0).
type ScheduleConfig [7]DayWindow

// LLMConfig holds provider configuration for the classification delegate.
// Providers are tried in order; an empty API key disables a provider.
type LLMConfig struct {
	Providers     []string // e.g. ["openai", "gemini", "groq"]
	OpenAIAPIKey  string
	GeminiAPIKey  string
	GroqAPIKey    string
	OpenAIModel   string
	GeminiModel   string
	GroqModel     string
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxRetryDelay time.Duration
}

// Enabled returns true if at least one provider has an API key.
func (c *LLMConfig) Enabled() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GatewayURL:   getEnv(EnvGatewayURL, ""),
		GatewayToken: getEnv(EnvGatewayToken, ""),

		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),
		Timezone:        getEnv(EnvTimezone, "America/La_Paz"),

		DataDir: getEnv(EnvDataDir, "./data"),

		Delays: DelayConfig{
			ReadPerChar:   getMillisEnv(EnvReadMsPerChar, 60),
			MinRead:       getMillisEnv(EnvMinReadTime, 1000),
			MaxRead:       getMillisEnv(EnvMaxReadTime, 4000),
			TypingBase:    getMillisEnv(EnvTypingBase, 2000),
			TypingPerChar: getMillisEnv(EnvTypingMsPerChar, 30),
			MinTyping:     getMillisEnv(EnvMinTypingTime, 2000),
			MaxTyping:     getMillisEnv(EnvMaxTypingTime, 6000),
			ReadJitter:    500 * time.Millisecond,
			TypingJitter:  time.Second,
		},

		Limits: LimitConfig{
			MaxPerDay:    getIntEnv(EnvMaxMessagesPerDay, 60),
			MaxPerHour:   getIntEnv(EnvMaxMessagesPerHour, 15),
			MaxPerSender: getIntEnv(EnvMaxMessagesPerSender, 5),
		},

		Schedule: defaultSchedule(),

		IdentityMaxRetries: getIntEnv(EnvIdentityMaxRetries, 3),
		DedupWindow:        getDurationEnv(EnvDedupWindow, 5*time.Minute),
		DedupMaxEntries:    getIntEnv(EnvDedupMaxEntries, 4096),

		LLM: LLMConfig{
			Providers:     splitList(getEnv(EnvLLMProviders, "openai,gemini,groq")),
			OpenAIAPIKey:  getEnv(EnvOpenAIAPIKey, ""),
			GeminiAPIKey:  getEnv(EnvGeminiAPIKey, ""),
			GroqAPIKey:    getEnv(EnvGroqAPIKey, ""),
			OpenAIModel:   getEnv(EnvOpenAIClassifyModel, "gpt-4.1-mini"),
			GeminiModel:   getEnv(EnvGeminiClassifyModel, "gemini-2.5-flash-lite"),
			GroqModel:     getEnv(EnvGroqClassifyModel, "llama-3.3-70b-versatile"),
			MaxAttempts:   2,
			InitialDelay:  500 * time.Millisecond,
			MaxRetryDelay: 3 * time.Second,
		},

		SentryDSN:           getEnv(EnvSentryDSN, ""),
		SentryEnvironment:   getEnv(EnvSentryEnvironment, "production"),
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
		MetricsUsername:     getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:     getEnv(EnvMetricsPassword, ""),
	}

	applyScheduleOverrides(&cfg.Schedule)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// defaultSchedule is Mon-Fri 8:00-18:00, Sat 8:00-12:00, Sun closed.
func defaultSchedule() ScheduleConfig {
	var s ScheduleConfig
	for d := time.Monday; d <= time.Friday; d++ {
		s[d] = DayWindow{Enabled: true, Start: 8, End: 18}
	}
	s[time.Saturday] = DayWindow{Enabled: true, Start: 8, End: 12}
	s[time.Sunday] = DayWindow{Enabled: false}
	return s
}

func applyScheduleOverrides(s *ScheduleConfig) {
	weekStart := getIntEnv(EnvWeekdayStartHour, -1)
	weekEnd := getIntEnv(EnvWeekdayEndHour, -1)
	for d := time.Monday; d <= time.Friday; d++ {
		if weekStart >= 0 {
			s[d].Start = weekStart
		}
		if weekEnd >= 0 {
			s[d].End = weekEnd
		}
	}

	s[time.Saturday].Enabled = getBoolEnv(EnvSaturdayEnabled, s[time.Saturday].Enabled)
	if v := getIntEnv(EnvSaturdayStartHour, -1); v >= 0 {
		s[time.Saturday].Start = v
	}
	if v := getIntEnv(EnvSaturdayEndHour, -1); v >= 0 {
		s[time.Saturday].End = v
	}
	s[time.Sunday].Enabled = getBoolEnv(EnvSundayEnabled, s[time.Sunday].Enabled)
}

// Validate checks that required values are set and bounds are coherent.
func (c *Config) Validate() error {
	var errs []error

	if c.GatewayURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvGatewayURL))
	}
	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvDataDir))
	}
	if c.Delays.MinRead > c.Delays.MaxRead {
		errs = append(errs, fmt.Errorf("read delay bounds inverted: min %v > max %v", c.Delays.MinRead, c.Delays.MaxRead))
	}
	if c.Delays.MinTyping > c.Delays.MaxTyping {
		errs = append(errs, fmt.Errorf("typing delay bounds inverted: min %v > max %v", c.Delays.MinTyping, c.Delays.MaxTyping))
	}
	if c.Limits.MaxPerDay <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxMessagesPerDay, c.Limits.MaxPerDay))
	}
	if c.Limits.MaxPerSender <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxMessagesPerSender, c.Limits.MaxPerSender))
	}
	if c.IdentityMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvIdentityMaxRetries, c.IdentityMaxRetries))
	}
	if c.DedupWindow <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvDedupWindow, c.DedupWindow))
	}
	for d, w := range c.Schedule {
		if !w.Enabled {
			continue
		}
		if w.Start < 0 || w.End > 24 || w.Start >= w.End {
			errs = append(errs, fmt.Errorf("invalid business hours for %s: [%d, %d)", time.Weekday(d), w.Start, w.End))
		}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s %q: %w", EnvTimezone, c.Timezone, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Location resolves the configured timezone. Validate guarantees it parses.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SQLitePath returns the full path to the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "messages.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getMillisEnv reads an integer env value interpreted as milliseconds.
func getMillisEnv(key string, defaultMillis int) time.Duration {
	return time.Duration(getIntEnv(key, defaultMillis)) * time.Millisecond
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
