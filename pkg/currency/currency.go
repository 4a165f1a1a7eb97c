// Package currency converts listing prices between the supported display
// currencies. Conversion is a pure function over a fixed rate table; the
// marketplace stores whatever currency the seller priced in and converts only
// for display.
package currency

import (
	"fmt"
	"math"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// usdRates maps each supported code to its value per 1 USD.
var usdRates = map[models.CurrencyCode]float64{
	models.CurrencyUSD: 1,
	models.CurrencyEUR: 0.95,
	models.CurrencyGBP: 0.79,
	models.CurrencyCAD: 1.42,
}

// Convert translates amount from one currency to another, rounded to cents.
func Convert(amount float64, from, to models.CurrencyCode) (float64, error) {
	fromRate, ok := usdRates[from]
	if !ok {
		return 0, fmt.Errorf("unknown source currency %q", from)
	}
	toRate, ok := usdRates[to]
	if !ok {
		return 0, fmt.Errorf("unknown target currency %q", to)
	}
	converted := amount / fromRate * toRate
	return math.Round(converted*100) / 100, nil
}

// ConvertPtr converts an optional amount, passing nil through.
func ConvertPtr(amount *float64, from, to models.CurrencyCode) (*float64, error) {
	if amount == nil {
		return nil, nil
	}
	v, err := Convert(*amount, from, to)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
