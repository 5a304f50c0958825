// internal/infrastructure/exchange_providers/open_er_provider.go
package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/justwatch-proxy/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultOpenERURL     = "https://open.er-api.com/v6/latest/USD"
	DefaultOpenERTimeout = 30 * time.Second
)

type OpenERProvider struct {
	url    string
	client *http.Client
}

type ExchangeRateResponse struct {
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

func NewOpenERProvider(url string, timeout time.Duration) *OpenERProvider {
	if url == "" {
		url = DefaultOpenERURL
	}
	if timeout <= 0 {
		timeout = DefaultOpenERTimeout
	}
	return &OpenERProvider{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *OpenERProvider) GetName() string {
	return "open.er-api"
}

// FetchRates performs a single GET; there are no retries.
func (p *OpenERProvider) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rates from %s: %w", domain.ErrFetch, p.GetName(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: exchange rate API returned status: %d", domain.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", domain.ErrFetch, err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: received empty response from exchange rate API", domain.ErrEmptyData)
	}

	var payload ExchangeRateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: base %q", domain.ErrEmptyData, payload.BaseCode)
	}

	return &domain.RateTable{
		BaseCode: payload.BaseCode,
		Rates:    payload.Rates,
	}, nil
}

func (p *OpenERProvider) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.FetchRates(ctx)
	return err == nil
}

// IsTimeout reports whether err came from the client deadline or a cancelled context.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
