// internal/domain/exchange_provider.go
package domain

import "context"

// ExchangeRateProvider loads the whole rate table in one round trip.
type ExchangeRateProvider interface {
	FetchRates(ctx context.Context) (*RateTable, error)
	GetName() string
	IsHealthy(ctx context.Context) bool
}
