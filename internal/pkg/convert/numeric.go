// Package convert provides type conversion utilities.
package convert

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned by ParseFloat for blank input.
	ErrEmpty = errors.New("empty value")
	// ErrNotFinite is returned for NaN, infinities and out-of-range values.
	ErrNotFinite = errors.New("value is not a finite number")
)

// ParseFloat parses plain or exponent decimal text ("80", "150.5", "2.5e1").
// NaN, infinities and values outside the float64 range are rejected.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrNotFinite
		}
		return 0, err
	}
	if !IsFinite(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// ParseFloatOr returns def for blank input and otherwise behaves like ParseFloat.
func ParseFloatOr(s string, def float64) (float64, error) {
	v, err := ParseFloat(s)
	if errors.Is(err, ErrEmpty) {
		return def, nil
	}
	return v, err
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
