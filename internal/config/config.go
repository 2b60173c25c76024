package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8080"`
	AgentWebhookURL string `env:"AGENT_WEBHOOK_URL,required"`
	AgentTimeoutMS  int    `env:"AGENT_TIMEOUT_MS" envDefault:"10000"`
	DatabaseURL     string `env:"DATABASE_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	JWTSecret       string `env:"JWT_SECRET"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AgentTimeout expone el plazo del webhook como duración.
func (c *Config) AgentTimeout() time.Duration {
	return time.Duration(c.AgentTimeoutMS) * time.Millisecond
}
