package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
	CORS   CORSConfig   `mapstructure:"cors" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// MaxUploadBytes caps the size of an upload request body.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`

	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains the settings of the Gemini-backed CV analyzer.
type LLMConfig struct {
	GeminiAPIKey          string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName             string `mapstructure:"model_name" validate:"required"`
	MaxRetries            int    `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryDelaySeconds     int    `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
}
