package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/LavaJover/justwatch-proxy/internal/domain"
	"github.com/LavaJover/justwatch-proxy/internal/usecase/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls atomic.Int32
	err   error
}

func (p *stubProvider) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return &domain.RateTable{
		BaseCode: "USD",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.92"),
			"GBP": decimal.RequireFromString("0.79"),
		},
	}, nil
}

func (p *stubProvider) GetName() string { return "stub" }

func (p *stubProvider) IsHealthy(ctx context.Context) bool { return p.err == nil }

func TestPricingHandler_ConvertToUSD(t *testing.T) {
	provider := &stubProvider{}
	h := NewPricingHandler(currency.NewDefaultCurrencyConverter(provider, nil, nil), nil)

	tests := []struct {
		query  string
		usd    string
		priced bool
		reason string
	}{
		{"currency=EUR&amount=92", "100", true, "priced"},
		{"currency=GBP&amount=5.99", "7.58", true, "priced"},
		{"currency=EUR&amount=0", "0", true, "zero_amount"},
		{"currency=EUR", "0", true, "zero_amount"},
		{"currency=JPY&amount=10", "999", false, "unknown_currency"},
		{"amount=10", "999", false, "missing_currency"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ConvertToUSD(rec, httptest.NewRequest(http.MethodGet, "/pricing/usd?"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body struct {
				USD    decimal.Decimal `json:"usd"`
				Priced bool            `json:"priced"`
				Reason string          `json:"reason"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.USD.Equal(decimal.RequireFromString(tt.usd)), "usd %s", body.USD)
			assert.Equal(t, tt.priced, body.Priced)
			assert.Equal(t, tt.reason, body.Reason)
		})
	}

	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestPricingHandler_InvalidAmount(t *testing.T) {
	provider := &stubProvider{}
	h := NewPricingHandler(currency.NewDefaultCurrencyConverter(provider, nil, nil), nil)

	amounts := []string{
		"ten",
		"1e5000000",
		"1e-5000000",
		"1e13",
		"1000000000000.01",
		"-2000000000000",
		"0.000000001",
		"1" + strings.Repeat("0", 40),
	}

	for _, amount := range amounts {
		t.Run(amount, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ConvertToUSD(rec, httptest.NewRequest(http.MethodGet, "/pricing/usd?currency=EUR&amount="+amount, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid amount")
			assert.Less(t, rec.Body.Len(), 256)
		})
	}

	assert.Equal(t, int32(0), provider.calls.Load())
}

func TestPricingHandler_AmountBounds(t *testing.T) {
	h := NewPricingHandler(currency.NewDefaultCurrencyConverter(&stubProvider{}, nil, nil), nil)

	for _, amount := range []string{"1e12", "-1e12", "0.00000001", "92.00000000", "9.2e1"} {
		t.Run(amount, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ConvertToUSD(rec, httptest.NewRequest(http.MethodGet, "/pricing/usd?currency=EUR&amount="+amount, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestPricingHandler_Unavailable(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("%w: exchange rate API returned status: 502", domain.ErrFetch)}
	converter := currency.NewDefaultCurrencyConverter(provider, nil, nil)
	h := NewPricingHandler(converter, nil)

	rec := httptest.NewRecorder()
	h.ConvertToUSD(rec, httptest.NewRequest(http.MethodGet, "/pricing/usd?currency=EUR&amount=92", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Pricing unavailable", body["error"])
	assert.Contains(t, body["message"], "status: 502")

	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/pricing/status", nil))
	assert.JSONEq(t, `{"state":"FAILED","rates":0,"providerHealthy":false}`, rec.Body.String())
}

func TestPricingHandler_Status(t *testing.T) {
	converter := currency.NewDefaultCurrencyConverter(&stubProvider{}, nil, nil)
	h := NewPricingHandler(converter, nil)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/pricing/status", nil))
	assert.JSONEq(t, `{"state":"UNINITIALIZED","rates":0,"providerHealthy":true}`, rec.Body.String())

	require.NoError(t, converter.Initialize(context.Background()))

	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/pricing/status", nil))
	assert.JSONEq(t, `{"state":"READY","baseCode":"USD","rates":2,"providerHealthy":true}`, rec.Body.String())
}
