package youtube

// Config contains YouTube client configuration. APIKey is only needed for
// catalog lookups through the Data API; transcript retrieval works without
// one. RateLimit and RateBurst shape the token bucket in front of the Data
// API, in requests per second.
type Config struct {
	APIKey      string  `env:"YOUTUBE_API_KEY"`
	DataBaseURL string  `env:"YOUTUBE_DATA_BASE_URL" envDefault:"https://www.googleapis.com/youtube/v3"`
	PlayerURL   string  `env:"YOUTUBE_PLAYER_URL"    envDefault:"https://www.youtube.com/youtubei/v1/player"`
	Timeout     int     `env:"YOUTUBE_TIMEOUT"       envDefault:"30"`
	RateLimit   float64 `env:"YOUTUBE_RATE_LIMIT"    envDefault:"8"`
	RateBurst   int     `env:"YOUTUBE_RATE_BURST"    envDefault:"4"`
}
