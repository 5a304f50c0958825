package currency

import (
	"context"
	"sync/atomic"

	"github.com/LavaJover/justwatch-proxy/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeProvider struct {
	calls     atomic.Int32
	gate      chan struct{}
	fetch     func(call int32) (*domain.RateTable, error)
	unhealthy bool
}

func (p *fakeProvider) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	n := p.calls.Add(1)
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.fetch(n)
}

func (p *fakeProvider) GetName() string { return "fake" }

func (p *fakeProvider) IsHealthy(ctx context.Context) bool { return !p.unhealthy }

func staticRates(rates map[string]string) func(int32) (*domain.RateTable, error) {
	return func(int32) (*domain.RateTable, error) {
		table := &domain.RateTable{BaseCode: "USD", Rates: map[string]decimal.Decimal{}}
		for code, rate := range rates {
			table.Rates[code] = decimal.RequireFromString(rate)
		}
		return table, nil
	}
}
