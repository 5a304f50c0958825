package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ProxyConfig struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	JustWatchAPI  `yaml:"justwatch_api"`
	ExchangeRates `yaml:"exchange_rates"`
	LogConfig     `yaml:"log_config"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"45s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
}

type JustWatchAPI struct {
	BaseURL   string        `yaml:"base_url" env:"JUSTWATCH_BASE_URL" env-default:"https://apis.justwatch.com"`
	UserAgent string        `yaml:"user_agent" env:"JUSTWATCH_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	Timeout   time.Duration `yaml:"timeout" env:"JUSTWATCH_TIMEOUT" env-default:"30s"`
}

type ExchangeRates struct {
	URL     string        `yaml:"url" env:"EXCHANGE_RATES_URL" env-default:"https://open.er-api.com/v6/latest/USD"`
	Timeout time.Duration `yaml:"timeout" env:"EXCHANGE_RATES_TIMEOUT" env-default:"30s"`
	// no env-default: cleanenv would overwrite an explicit false
	DisableWarmup bool `yaml:"disable_warmup" env:"EXCHANGE_RATES_DISABLE_WARMUP"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
}

func (s HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Load reads the YAML file at configPath, or only the environment when
// configPath is empty.
func Load(configPath string) (*ProxyConfig, error) {
	var cfg ProxyConfig

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	// YAML to struct object
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *ProxyConfig {
	configPath := os.Getenv("PROXY_CONFIG_PATH")
	if configPath == "" {
		log.Println("PROXY_CONFIG_PATH was not found, reading config from env")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	return cfg
}
