package anthropic

// Config contains the messages-API client configuration.
// Created once at startup and never mutated afterwards.
type Config struct {
	APIKey        string  `env:"ANTHROPIC_API_KEY"`
	Endpoint      string  `env:"ANTHROPIC_ENDPOINT"       envDefault:"https://api.anthropic.com/v1/messages"`
	Model         string  `env:"ANTHROPIC_MODEL"          envDefault:"claude-opus-4-1-20250805"`
	MaxTokens     int     `env:"ANTHROPIC_MAX_TOKENS"     envDefault:"4096"`
	Temperature   float64 `env:"ANTHROPIC_TEMPERATURE"    envDefault:"0.7"`
	TopP          float64 `env:"ANTHROPIC_TOP_P"          envDefault:"0.95"`
	RetryAttempts int     `env:"ANTHROPIC_RETRY_ATTEMPTS" envDefault:"3"`
	Timeout       int     `env:"ANTHROPIC_TIMEOUT"        envDefault:"60"`
}
