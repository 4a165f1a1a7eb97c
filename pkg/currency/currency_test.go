package currency

import (
	"testing"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		from, to models.CurrencyCode
		want     float64
	}{
		{"same currency", 100, models.CurrencyUSD, models.CurrencyUSD, 100},
		{"usd to eur", 300, models.CurrencyUSD, models.CurrencyEUR, 285},
		{"usd to gbp", 100, models.CurrencyUSD, models.CurrencyGBP, 79},
		{"usd to cad", 100, models.CurrencyUSD, models.CurrencyCAD, 142},
		{"eur to usd roundtrip-ish", 95, models.CurrencyEUR, models.CurrencyUSD, 100},
		{"zero amount", 0, models.CurrencyUSD, models.CurrencyGBP, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.amount, tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvert_RoundsToCents(t *testing.T) {
	got, err := Convert(99.99, models.CurrencyUSD, models.CurrencyGBP) // 78.9921
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 78.99 {
		t.Errorf("expected 78.99, got %v", got)
	}
}

func TestConvert_UnknownCurrency(t *testing.T) {
	if _, err := Convert(10, models.CurrencyCode("JPY"), models.CurrencyUSD); err == nil {
		t.Fatal("expected error for unknown source currency")
	}
	if _, err := Convert(10, models.CurrencyUSD, models.CurrencyCode("JPY")); err == nil {
		t.Fatal("expected error for unknown target currency")
	}
}

func TestConvertPtr(t *testing.T) {
	got, err := ConvertPtr(nil, models.CurrencyUSD, models.CurrencyEUR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil to pass through")
	}

	v := 100.0
	got, err = ConvertPtr(&v, models.CurrencyUSD, models.CurrencyEUR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != 95 {
		t.Errorf("expected 95, got %v", got)
	}
}
