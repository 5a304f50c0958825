package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/LavaJover/justwatch-proxy/internal/domain"
	infrastructure "github.com/LavaJover/justwatch-proxy/internal/infrastructure/exchange_providers"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/logger"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const usdPlaces = 2

type CurrencyConverter interface {
	Initialize(ctx context.Context) error
	ConvertToUSD(currencyCode string, amount decimal.Decimal) (decimal.Decimal, error)
	TryConvertToUSD(currencyCode string, amount decimal.Decimal) (domain.Conversion, error)
	State() domain.ConverterState
	BaseCode() string
	Rates() map[string]decimal.Decimal
	ProviderHealthy(ctx context.Context) bool
}

type DefaultCurrencyConverter struct {
	provider domain.ExchangeRateProvider
	guard    *InitGuard
	logger   *zap.Logger
	metrics  *metrics.ProxyMetrics

	// table is published before the guard is marked done
	table atomic.Pointer[domain.RateTable]
	state atomic.Value
}

func NewDefaultCurrencyConverter(
	provider domain.ExchangeRateProvider,
	log *zap.Logger,
	m *metrics.ProxyMetrics,
) *DefaultCurrencyConverter {
	c := &DefaultCurrencyConverter{
		provider: provider,
		guard:    NewInitGuard(),
		logger:   logger.OrNop(log).Named("currency"),
		metrics:  m,
	}
	c.state.Store(domain.StateUninitialized)
	return c
}

// Initialize loads the rate table. It is safe to call repeatedly and from
// many goroutines; only the first successful call hits the network.
func (c *DefaultCurrencyConverter) Initialize(ctx context.Context) error {
	err := c.guard.Do(ctx, c.load)
	if err != nil {
		c.logger.Error("Failed to initialize currency converter", zap.Error(err))
		return fmt.Errorf("failed to initialize currency converter: %w", err)
	}
	return nil
}

func (c *DefaultCurrencyConverter) load(ctx context.Context) error {
	c.state.Store(domain.StateInitializing)
	started := time.Now()

	table, err := c.provider.FetchRates(ctx)
	if err == nil && table.Len() == 0 {
		err = fmt.Errorf("%w: provider %s returned no rates", domain.ErrEmptyData, c.provider.GetName())
	}
	if err != nil {
		c.state.Store(domain.StateFailed)
		c.metrics.RecordRateFetch(fetchResult(err), time.Since(started), 0)
		return err
	}

	c.table.Store(table)
	c.state.Store(domain.StateReady)
	c.metrics.RecordRateFetch("success", time.Since(started), table.Len())
	c.logger.Info("Exchange rates loaded",
		zap.String("provider", c.provider.GetName()),
		zap.String("base", table.BaseCode),
		zap.Int("rates", table.Len()),
	)
	return nil
}

// ConvertToUSD returns amount in USD rounded to cents. Data problems degrade
// to domain.UnpricedUSD; only a call before initialization returns an error.
func (c *DefaultCurrencyConverter) ConvertToUSD(currencyCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	conversion, err := c.TryConvertToUSD(currencyCode, amount)
	if err != nil {
		return decimal.Zero, err
	}
	return conversion.USD, nil
}

func (c *DefaultCurrencyConverter) TryConvertToUSD(currencyCode string, amount decimal.Decimal) (domain.Conversion, error) {
	table := c.table.Load()
	if !c.guard.Done() || table == nil {
		c.logger.Error("Currency converter not initialized")
		return domain.Conversion{}, domain.ErrNotInitialized
	}

	if amount.IsZero() {
		return c.priced(decimal.Zero, domain.ReasonZeroAmount), nil
	}

	if strings.TrimSpace(currencyCode) == "" {
		c.logger.Warn("Currency code is empty, returning placeholder value")
		return c.unpriced(domain.ReasonMissingCurrency), nil
	}

	rate, ok := table.Rate(currencyCode)
	if !ok {
		c.logger.Warn("Currency code not found in exchange rates, returning placeholder value",
			zap.String("currency", logger.Sanitize(currencyCode)))
		return c.unpriced(domain.ReasonUnknownCurrency), nil
	}

	if !rate.IsPositive() {
		c.logger.Warn("Invalid exchange rate, returning placeholder value",
			zap.String("currency", logger.Sanitize(currencyCode)),
			zap.String("rate", rate.String()))
		return c.unpriced(domain.ReasonInvalidRate), nil
	}

	return c.priced(amount.DivRound(rate, usdPlaces), domain.ReasonPriced), nil
}

func (c *DefaultCurrencyConverter) priced(usd decimal.Decimal, reason domain.ConversionReason) domain.Conversion {
	c.metrics.RecordConversion(string(reason))
	return domain.Conversion{USD: usd, Priced: true, Reason: reason}
}

func (c *DefaultCurrencyConverter) unpriced(reason domain.ConversionReason) domain.Conversion {
	c.metrics.RecordConversion(string(reason))
	return domain.Conversion{USD: domain.UnpricedUSD, Priced: false, Reason: reason}
}

func (c *DefaultCurrencyConverter) State() domain.ConverterState {
	return c.state.Load().(domain.ConverterState)
}

func (c *DefaultCurrencyConverter) BaseCode() string {
	if table := c.table.Load(); table != nil {
		return table.BaseCode
	}
	return ""
}

func (c *DefaultCurrencyConverter) Rates() map[string]decimal.Decimal {
	return c.table.Load().Copy()
}

// ProviderHealthy probes the exchange rate provider without touching the
// loaded table.
func (c *DefaultCurrencyConverter) ProviderHealthy(ctx context.Context) bool {
	return c.provider.IsHealthy(ctx)
}

func fetchResult(err error) string {
	switch {
	case infrastructure.IsTimeout(err):
		return "timeout"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	case errors.Is(err, domain.ErrEmptyData):
		return "empty_data"
	default:
		return "fetch_error"
	}
}
