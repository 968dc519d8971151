package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Google   GoogleConfig   `envPrefix:"GOOGLE_"`
	LLM      LLMConfig      `envPrefix:"LLM_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:"0.0.0.0:8080"`
	// BaseURL is the externally reachable URL of this backend, used to
	// build the OAuth callback.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// FrontendURL is where the OAuth callback redirects after login.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:8081"`
	// CORSOrigins is a regexp matched against the Origin header.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:".*"`
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"ecoloop"`
}

// AuthConfig carries the token signing secret. JWT_SECRET has no
// default: startup fails when it is absent.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET,required"`
}

type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type LLMConfig struct {
	GoogleAIAPIKey string `env:"GOOGLE_AI_API_KEY,required"`
	Model          string `env:"MODEL" envDefault:"googleai/gemini-1.5-flash"`
}

// KafkaConfig configures the product event publisher. Publishing is off
// when Brokers is empty.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS"`
	Topic   string   `env:"TOPIC" envDefault:"product-events"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
