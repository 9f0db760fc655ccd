// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core
	EnvGatewayURL   = "UNIBOT_GATEWAY_URL"
	EnvGatewayToken = "UNIBOT_GATEWAY_TOKEN"

	// Server
	EnvPort            = "UNIBOT_PORT"
	EnvLogLevel        = "UNIBOT_LOG_LEVEL"
	EnvShutdownTimeout = "UNIBOT_SHUTDOWN_TIMEOUT"
	EnvTimezone        = "UNIBOT_TIMEZONE"

	// Data
	EnvDataDir = "UNIBOT_DATA_DIR"

	// Anti-block delays (milliseconds unless noted)
	EnvReadMsPerChar   = "UNIBOT_READ_MS_PER_CHAR"
	EnvMinReadTime     = "UNIBOT_MIN_READ_TIME"
	EnvMaxReadTime     = "UNIBOT_MAX_READ_TIME"
	EnvTypingBase      = "UNIBOT_TYPING_BASE"
	EnvTypingMsPerChar = "UNIBOT_TYPING_MS_PER_CHAR"
	EnvMinTypingTime   = "UNIBOT_MIN_TYPING_TIME"
	EnvMaxTypingTime   = "UNIBOT_MAX_TYPING_TIME"

	// Rate limits
	EnvMaxMessagesPerDay    = "UNIBOT_MAX_MESSAGES_PER_DAY"
	EnvMaxMessagesPerHour   = "UNIBOT_MAX_MESSAGES_PER_HOUR"
	EnvMaxMessagesPerSender = "UNIBOT_MAX_MESSAGES_PER_SENDER"

	// Business hours
	EnvWeekdayStartHour  = "UNIBOT_WEEKDAY_START_HOUR"
	EnvWeekdayEndHour    = "UNIBOT_WEEKDAY_END_HOUR"
	EnvSaturdayEnabled   = "UNIBOT_SATURDAY_ENABLED"
	EnvSaturdayStartHour = "UNIBOT_SATURDAY_START_HOUR"
	EnvSaturdayEndHour   = "UNIBOT_SATURDAY_END_HOUR"
	EnvSundayEnabled     = "UNIBOT_SUNDAY_ENABLED"

	// Conversation
	EnvIdentityMaxRetries = "UNIBOT_IDENTITY_MAX_RETRIES"
	EnvDedupWindow        = "UNIBOT_DEDUP_WINDOW"
	EnvDedupMaxEntries    = "UNIBOT_DEDUP_MAX_ENTRIES"

	// LLM classification
	EnvLLMProviders        = "UNIBOT_LLM_PROVIDERS"
	EnvOpenAIAPIKey        = "UNIBOT_OPENAI_API_KEY"
	EnvGeminiAPIKey        = "UNIBOT_GEMINI_API_KEY"
	EnvGroqAPIKey          = "UNIBOT_GROQ_API_KEY"
	EnvOpenAIClassifyModel = "UNIBOT_OPENAI_CLASSIFY_MODEL"
	EnvGeminiClassifyModel = "UNIBOT_GEMINI_CLASSIFY_MODEL"
	EnvGroqClassifyModel   = "UNIBOT_GROQ_CLASSIFY_MODEL"

	// Sentry
	EnvSentryDSN         = "UNIBOT_SENTRY_DSN"
	EnvSentryEnvironment = "UNIBOT_SENTRY_ENVIRONMENT"

	// Better Stack
	EnvBetterStackToken    = "UNIBOT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "UNIBOT_BETTERSTACK_ENDPOINT"

	// Metrics auth
	EnvMetricsUsername = "UNIBOT_METRICS_USERNAME"
	EnvMetricsPassword = "UNIBOT_METRICS_PASSWORD"
)
