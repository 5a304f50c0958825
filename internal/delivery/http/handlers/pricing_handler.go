package handlers

import (
	"fmt"
	"net/http"
	"strings"

	pricingResponse "github.com/LavaJover/justwatch-proxy/internal/delivery/http/dto/pricing/response"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/logger"
	"github.com/LavaJover/justwatch-proxy/internal/usecase/currency"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxAmountLength = 32
	maxAmountScale  = 8
	maxAmountDigits = 13
)

var maxAmount = decimal.New(1, 12)

type PricingHandler struct {
	converter currency.CurrencyConverter
	logger    *zap.Logger
}

func NewPricingHandler(converter currency.CurrencyConverter, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		converter: converter,
		logger:    logger.OrNop(log).Named("pricing"),
	}
}

// ConvertToUSD handles GET /pricing/usd?currency=EUR&amount=9.99.
// Rates are loaded on first use; a missing amount counts as zero.
func (h *PricingHandler) ConvertToUSD(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := strings.TrimSpace(query.Get("currency"))

	amount := decimal.Zero
	if raw := strings.TrimSpace(query.Get("amount")); raw != "" {
		parsed, err := parseAmount(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid amount", err.Error())
			return
		}
		amount = parsed
	}

	if err := h.converter.Initialize(r.Context()); err != nil {
		h.logger.Error("Pricing unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "Pricing unavailable", err.Error())
		return
	}

	conversion, err := h.converter.TryConvertToUSD(code, amount)
	if err != nil {
		h.logger.Error("Conversion failed",
			zap.String("currency", logger.Sanitize(code)),
			zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "Pricing unavailable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pricingResponse.ConvertResponse{
		Currency: code,
		Amount:   amount,
		USD:      conversion.USD,
		Priced:   conversion.Priced,
		Reason:   string(conversion.Reason),
	})
}

func (h *PricingHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricingResponse.StatusResponse{
		State:           string(h.converter.State()),
		BaseCode:        h.converter.BaseCode(),
		Rates:           len(h.converter.Rates()),
		ProviderHealthy: h.converter.ProviderHealthy(r.Context()),
	})
}

// parseAmount accepts at most 8 decimal places and magnitudes up to 1e12.
func parseAmount(raw string) (decimal.Decimal, error) {
	if len(raw) > maxAmountLength {
		return decimal.Zero, fmt.Errorf("amount longer than %d characters", maxAmountLength)
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := parsed.Exponent(); exp < -maxAmountScale || (exp > 0 && int(exp)+parsed.NumDigits() > maxAmountDigits) {
		return decimal.Zero, fmt.Errorf("amount %q out of range", raw)
	}
	if parsed.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount %q out of range", raw)
	}
	return parsed, nil
}
