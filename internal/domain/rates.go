package domain

import "github.com/shopspring/decimal"

// UnpricedUSD is returned by the converter when an amount cannot be priced.
// The UI renders it as an obvious outlier.
var UnpricedUSD = decimal.NewFromInt(999)

// RateTable holds units of each currency per one unit of the base currency.
type RateTable struct {
	BaseCode string
	Rates    map[string]decimal.Decimal
}

func (t *RateTable) Rate(code string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rates)
}

// Copy returns a snapshot callers are free to mutate.
func (t *RateTable) Copy() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, t.Len())
	if t == nil {
		return out
	}
	for code, rate := range t.Rates {
		out[code] = rate
	}
	return out
}

type ConverterState string

const (
	StateUninitialized ConverterState = "UNINITIALIZED"
	StateInitializing  ConverterState = "INITIALIZING"
	StateReady         ConverterState = "READY"
	StateFailed        ConverterState = "FAILED"
)

type ConversionReason string

const (
	ReasonPriced          ConversionReason = "priced"
	ReasonZeroAmount      ConversionReason = "zero_amount"
	ReasonMissingCurrency ConversionReason = "missing_currency"
	ReasonUnknownCurrency ConversionReason = "unknown_currency"
	ReasonInvalidRate     ConversionReason = "invalid_rate"
)

// Conversion is the explicit form of a USD conversion. Priced is false when
// no rate could be applied; USD then carries UnpricedUSD.
type Conversion struct {
	USD    decimal.Decimal
	Priced bool
	Reason ConversionReason
}
