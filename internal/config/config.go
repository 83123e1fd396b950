package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/vidbrief/vidbrief/internal/provider/gemini"
	"github.com/vidbrief/vidbrief/internal/provider/openai"
	"github.com/vidbrief/vidbrief/internal/youtube"
)

// Config represents the summarizer configuration.
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Keys       KeysConfig
	Completion CompletionConfig
	Gemini     gemini.Config
	OpenAI     openai.Config
	YouTube    youtube.Config
	Redis      RedisConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int    `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int    `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
	StaticDir    string `env:"SERVER_STATIC_DIR"    envDefault:"web"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// KeysConfig holds the Google API keys feeding the credential pool, in
// rotation order. Up to five keys are read; unset slots are skipped.
type KeysConfig struct {
	Primary string `env:"GOOGLE_API_KEY"`
	Second  string `env:"GOOGLE_API_KEY_2"`
	Third   string `env:"GOOGLE_API_KEY_3"`
	Fourth  string `env:"GOOGLE_API_KEY_4"`
	Fifth   string `env:"GOOGLE_API_KEY_5"`
}

// Pool returns the configured keys in rotation order with unset slots
// dropped.
func (k KeysConfig) Pool() []string {
	keys := make([]string, 0, 5)
	for _, key := range []string{k.Primary, k.Second, k.Third, k.Fourth, k.Fifth} {
		if key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

// CompletionConfig selects the completion model and shapes the retry loop.
// BaseDelay is in seconds.
type CompletionConfig struct {
	Model      string `env:"COMPLETION_MODEL"       envDefault:"gemini-1.5-flash"`
	MaxRetries int    `env:"COMPLETION_MAX_RETRIES" envDefault:"3"`
	BaseDelay  int    `env:"COMPLETION_BASE_DELAY"  envDefault:"1"`
}

// RedisConfig contains the details cache connection settings. An empty Addr
// disables caching. CacheTTL is in seconds.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"        envDefault:"0"`
	CacheTTL int    `env:"REDIS_CACHE_TTL" envDefault:"3600"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*KeysConfig
	*CompletionConfig
	Gemini  *gemini.Config
	OpenAI  *openai.Config
	YouTube *youtube.Config
	*RedisConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Keys,
		&cfg.Completion,
		&cfg.Gemini,
		&cfg.OpenAI,
		&cfg.YouTube,
		&cfg.Redis,
	}
}
