package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Ledger      LedgerConfig      `yaml:"ledger"`
	PriceSource PriceSourceConfig `yaml:"price_source"`
	Stripe      StripeConfig      `yaml:"stripe"`
	JWT         JWTConfig         `yaml:"jwt"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Logger      LoggerConfig      `yaml:"logger"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
}

// LedgerConfig points at the Firebase Realtime Database REST surface.
type LedgerConfig struct {
	BaseURL    string        `yaml:"base_url"`
	AuthSecret string        `yaml:"auth_secret"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

type PriceSourceConfig struct {
	BaseURL         string        `yaml:"base_url"`
	VsCurrency      string        `yaml:"vs_currency"`
	PerPage         int           `yaml:"per_page"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxRetries      int           `yaml:"max_retries"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
}

type StripeConfig struct {
	BaseURL   string        `yaml:"base_url"`
	SecretKey string        `yaml:"secret_key"`
	Timeout   time.Duration `yaml:"timeout"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size"`
	CheckOrigin     bool          `yaml:"check_origin"`
	PingPeriod      time.Duration `yaml:"ping_period"`
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	TimeFormat string `yaml:"time_format"`
	Pretty     bool   `yaml:"pretty"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var config Config
	configData, err := os.ReadFile("./config.yaml")
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(configData, &config); err != nil {
		return nil, err
	}

	applyEnvOverrides(&config)

	return &config, nil
}

// Secrets come from the environment so config.yaml can be committed.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		config.Stripe.SecretKey = v
	}
	if v := os.Getenv("LEDGER_AUTH_SECRET"); v != "" {
		config.Ledger.AuthSecret = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWT.Secret = v
	}
}
