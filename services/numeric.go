package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is an optional numeric field. The zero value is unset.
//
// Partially entered construction data is normal, so decoding never fails:
// null, absent, non-numeric and non-finite values all decode to unset, and
// numeric strings such as "12.5" are accepted.
type Number struct {
	value float64
	set   bool
}

// Some returns a set Number. Non-finite values are treated as unset.
func Some(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, set: true}
}

// IsSet reports whether a value was supplied.
func (n Number) IsSet() bool { return n.set }

// UnwrapOrZero resolves an unset Number to 0.
func (n Number) UnwrapOrZero() float64 {
	if !n.set {
		return 0
	}
	return n.value
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Some(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Some(f)
		}
	}
	return nil
}

// UnwrapOrZero resolves an optional value to its float, treating unset as 0.
func UnwrapOrZero(n Number) float64 {
	return n.UnwrapOrZero()
}

// ClampNonNegative returns v, or 0 when v is negative.
func ClampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ClampPercent limits v to [0, 100].
func ClampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// money resolves an optional amount to a non-negative decimal.
func money(n Number) decimal.Decimal {
	return decimal.NewFromFloat(ClampNonNegative(n.UnwrapOrZero()))
}

// roundCents rounds to the smallest currency unit, half away from zero.
// Amounts reaching it are non-negative, so this is round-half-up.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundMoney rounds a monetary amount to 2 decimal places (half-up).
func RoundMoney(v float64) float64 {
	return roundCents(decimal.NewFromFloat(v)).InexactFloat64()
}

// DisplayPercent rounds a progress value to a whole percentage point for
// presentation. Internal aggregation keeps full precision.
func DisplayPercent(v float64) int {
	return int(math.Floor(ClampPercent(v) + 0.5))
}
