package config

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"3030"`
	// APIKey gates every route except /health. Empty means the gate is
	// disabled and the server runs in unprotected mode.
	APIKey string `env:"API_KEY"`
}

type AIConfig struct {
	APIURL  string `env:"GROQ_API_URL" envDefault:"https://api.groq.com/openai/v1"`
	APIKey  string `env:"GROQ_API_KEY"`
	Model   string `env:"GROQ_MODEL" envDefault:"moonshotai/kimi-k2-instruct-0905"`
	Timeout int    `env:"GROQ_TIMEOUT_SECONDS" envDefault:"60"`
}

type RouterConfig struct {
	// MoveEndpoint is the base URL of the move API this service calls for
	// /pipe_mail. It normally points back at this process.
	MoveEndpoint string `env:"MOVE_ENDPOINT" envDefault:"http://localhost:3030"`
}
