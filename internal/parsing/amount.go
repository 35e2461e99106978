package parsing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value in cents
type Amount int64

// maxDollarDigits bounds the whole-dollar part of a parsed amount so that
// cents and line totals always fit in an int64
const maxDollarDigits = 15

// MaxAmount is the largest amount ParseAmount or Times will produce
const MaxAmount = Amount(999_999_999_999_999_99)

// ParseAmount parses a money token such as "3.49" or "$12.00"
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	whole, frac, found := strings.Cut(s, ".")
	if !found {
		frac = "00"
	}
	if whole == "" {
		whole = "0"
	}
	if len(strings.TrimLeft(whole, "0")) > maxDollarDigits {
		return 0, fmt.Errorf("invalid amount %q: too large", s)
	}
	switch len(frac) {
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if dollars < 0 || cents < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return Amount(dollars*100 + cents), nil
}

// Times multiplies the amount by a quantity, rounding to the cent. It
// reports false when the product is not a number or exceeds MaxAmount.
func (a Amount) Times(qty float64) (Amount, bool) {
	p := math.Round(float64(a) * qty)
	if math.IsNaN(p) || math.Abs(p) > float64(MaxAmount) {
		return 0, false
	}
	return Amount(p), true
}

// Dollars returns the amount as a float, for display and thresholds
func (a Amount) Dollars() float64 {
	return float64(a) / 100
}

func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

// MarshalJSON writes the amount as a JSON number with two decimals
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON reads a JSON number (or quoted number) into cents
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	// JSON numbers from other encoders may carry more than two decimals
	if whole, frac, ok := strings.Cut(s, "."); ok && len(frac) > 2 {
		f, err := strconv.ParseFloat(whole+"."+frac, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		*a = Amount(math.Round(f * 100))
		if neg {
			*a = -*a
		}
		return nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	if neg {
		v = -v
	}
	*a = v
	return nil
}
