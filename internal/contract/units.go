package contract

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the token precision.
const Decimals = 18

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// ParseUnits converts a decimal token amount such as "10" or "0.5" into base units.
func ParseUnits(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("negative amount %q", amount)
	}

	whole, frac, hasFrac := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && frac == "" {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", amount, Decimals)
	}

	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return value, nil
}

// FormatUnits renders base units as a decimal string without trailing zeros.
func FormatUnits(value *big.Int) string {
	if value == nil {
		return "0"
	}
	s := new(big.Rat).SetFrac(value, unit).FloatString(Decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
