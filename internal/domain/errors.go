package domain

import "errors"

var (
	ErrFetch          = errors.New("exchange rate fetch failed")
	ErrParse          = errors.New("exchange rate payload is malformed")
	ErrEmptyData      = errors.New("exchange rate payload has no rates")
	ErrNotInitialized = errors.New("currency converter not initialized")
)
