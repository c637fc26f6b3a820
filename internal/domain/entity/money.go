package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

// Token amounts are stored with 2 decimal places, provider costs in USD
// with 4. All arithmetic goes through decimal.Decimal; floats never touch
// monetary values.
const (
	TokenDecimalPlaces int32 = 2
	UsdDecimalPlaces   int32 = 4
)

// QuantizeTokens rounds a token amount to the stored precision.
func QuantizeTokens(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(TokenDecimalPlaces)
}

// QuantizeUSD rounds a USD cost to the stored precision.
func QuantizeUSD(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(UsdDecimalPlaces)
}

// ParseTokenAmount validates and parses a caller-supplied token amount.
// The amount must be a positive number with at most two decimal places.
func ParseTokenAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}
	if value.IsNegative() {
		return decimal.Zero, errs.ErrNegativeAmount
	}
	if value.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	if value.Exponent() < -TokenDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, TokenDecimalPlaces)
	}
	return value, nil
}
