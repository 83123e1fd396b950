package openai

// Config contains OpenAI provider configuration.
// The connection fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds)
//
// APIKey, when set, pins the provider to a single key and bypasses the
// credential pool.
type Config struct {
	APIKey      string  `env:"OPENAI_API_KEY"`
	BaseURL     string  `env:"OPENAI_BASE_URL"    envDefault:"https://api.openai.com/v1"`
	Timeout     int     `env:"OPENAI_TIMEOUT"     envDefault:"60"`
	Temperature float64 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS"  envDefault:"1024"`
}
