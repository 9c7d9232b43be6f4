package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Commission rate bounds. Rates outside this range are clamped at use time;
// a rate that cannot be parsed falls back to the default.
const (
	DefaultRate = 0.18
	MinRate     = 0.15
	MaxRate     = 0.20
)

var ErrInvalidAmount = errors.New("invalid amount")

// ClampRate clamps a commission rate to [MinRate, MaxRate]. NaN and
// infinities fall back to DefaultRate rather than erroring.
func ClampRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = DefaultRate
	}
	return math.Min(MaxRate, math.Max(MinRate, rate))
}

// ParseRate parses a configured commission rate string. Empty or
// non-numeric input yields DefaultRate; the result is always clamped.
func ParseRate(raw string) float64 {
	if raw == "" {
		return DefaultRate
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultRate
	}
	return ClampRate(rate)
}

// ComputeFee splits a gross amount in minor units into platform fee and
// creator net. The fee is round-half-up of gross*rate so that
// fee+net == gross for every non-negative gross.
func ComputeFee(gross int64, rate float64) (fee, net int64, err error) {
	if gross < 0 {
		return 0, 0, ErrInvalidAmount
	}
	r := ClampRate(rate)
	fee = int64(math.Floor(float64(gross)*r + 0.5))
	net = gross - fee
	return fee, net, nil
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"KES": "KSh ",
}

// Format renders a minor-unit amount for display. Never used in arithmetic.
func Format(amountCents int64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	sign := ""
	if amountCents < 0 {
		sign = "-"
		amountCents = -amountCents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, amountCents/100, amountCents%100)
}
