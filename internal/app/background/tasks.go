package background

import (
	"context"

	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/logger"
	"go.uber.org/zap"
)

type RatesInitializer interface {
	Initialize(ctx context.Context) error
}

type BackgroundTasks struct {
	Rates  RatesInitializer
	Logger *zap.Logger
}

func NewBackgroundTasks(rates RatesInitializer, log *zap.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		Rates:  rates,
		Logger: logger.OrNop(log).Named("background"),
	}
}

// StartAll launches the startup tasks. The returned channel closes once
// every task has returned.
func (bt *BackgroundTasks) StartAll(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		bt.warmupRates(ctx)
	}()
	return done
}

// warmupRates loads exchange rates once so the first priced request does not
// pay for the fetch. A failure is not fatal: pricing requests retry lazily.
func (bt *BackgroundTasks) warmupRates(ctx context.Context) {
	if err := bt.Rates.Initialize(ctx); err != nil {
		bt.Logger.Warn("Exchange rate warm-up failed, pricing will retry on demand", zap.Error(err))
		return
	}
	bt.Logger.Info("Exchange rate warm-up finished")
}
