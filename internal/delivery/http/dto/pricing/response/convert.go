package response

import "github.com/shopspring/decimal"

type ConvertResponse struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	USD      decimal.Decimal `json:"usd"`
	Priced   bool            `json:"priced"`
	Reason   string          `json:"reason"`
}

type StatusResponse struct {
	State           string `json:"state"`
	BaseCode        string `json:"baseCode,omitempty"`
	Rates           int    `json:"rates"`
	ProviderHealthy bool   `json:"providerHealthy"`
}
