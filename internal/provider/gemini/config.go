package gemini

// Config contains Gemini provider configuration. APIKey, when set, pins the
// provider to a single key and bypasses the credential pool entirely. The
// generation fields map onto the request's generationConfig block.
type Config struct {
	APIKey          string  `env:"GEMINI_API_KEY"`
	BaseURL         string  `env:"GEMINI_BASE_URL"          envDefault:"https://generativelanguage.googleapis.com"`
	Timeout         int     `env:"GEMINI_TIMEOUT"           envDefault:"60"`
	Temperature     float64 `env:"GEMINI_TEMPERATURE"       envDefault:"0.7"`
	TopP            float64 `env:"GEMINI_TOP_P"             envDefault:"0.8"`
	TopK            int     `env:"GEMINI_TOP_K"             envDefault:"1"`
	MaxOutputTokens int     `env:"GEMINI_MAX_OUTPUT_TOKENS" envDefault:"1024"`
}
