package config

const (
	defaultDataDir             = "data"
	defaultDatabasePath        = "database.sqlite3"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultVisionBaseURL       = "https://api.openai.com/v1/chat/completions"
	defaultVisionModel         = "gpt-4o"
	defaultVisionTimeout       = 30
	defaultVisionMaxAttempts   = 6
	defaultVisionRetryInitial  = 1
	defaultVisionRetryMax      = 40
	defaultVisionMaxTokens     = 700
	defaultVisionDetail        = "low"
	visionAPIKeyEnv            = "OPENAI_API_KEY"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			DatabasePath: defaultDatabasePath,
		},
		Vision: Vision{
			BaseURL:             defaultVisionBaseURL,
			Model:               defaultVisionModel,
			TimeoutSeconds:      defaultVisionTimeout,
			MaxAttempts:         defaultVisionMaxAttempts,
			RetryInitialSeconds: defaultVisionRetryInitial,
			RetryMaxSeconds:     defaultVisionRetryMax,
			MaxTokens:           defaultVisionMaxTokens,
			Detail:              defaultVisionDetail,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
