package setup

import (
	"fmt"

	"github.com/LavaJover/justwatch-proxy/internal/client"
	"github.com/LavaJover/justwatch-proxy/internal/config"
	"github.com/LavaJover/justwatch-proxy/internal/delivery/http/handlers"
	infrastructure "github.com/LavaJover/justwatch-proxy/internal/infrastructure/exchange_providers"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/logger"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/metrics"
	"github.com/LavaJover/justwatch-proxy/internal/usecase/currency"
	"go.uber.org/zap"
)

type Dependencies struct {
	Config    *config.ProxyConfig
	Logger    *zap.Logger
	Metrics   *metrics.ProxyMetrics
	Upstream  *client.JustWatchClient
	Converter *currency.DefaultCurrencyConverter
	Handlers  *Handlers
}

type Handlers struct {
	Proxy   *handlers.ProxyHandler
	Pricing *handlers.PricingHandler
}

func InitializeDependencies(cfg *config.ProxyConfig) (*Dependencies, error) {
	log, err := logger.New(cfg.LogConfig.LogLevel, cfg.LogConfig.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log = log.With(zap.String("env", cfg.Env))

	m := metrics.NewProxyMetrics()

	upstream := client.NewJustWatchClient(
		cfg.JustWatchAPI.BaseURL,
		cfg.JustWatchAPI.UserAgent,
		cfg.JustWatchAPI.Timeout,
	)

	provider := infrastructure.NewOpenERProvider(cfg.ExchangeRates.URL, cfg.ExchangeRates.Timeout)
	converter := currency.NewDefaultCurrencyConverter(provider, log, m)

	return &Dependencies{
		Config:    cfg,
		Logger:    log,
		Metrics:   m,
		Upstream:  upstream,
		Converter: converter,
		Handlers: &Handlers{
			Proxy:   handlers.NewProxyHandler(upstream, log, m, cfg.HTTPServer.MaxBodyBytes),
			Pricing: handlers.NewPricingHandler(converter, log),
		},
	}, nil
}
