package common

import "golang.org/x/exp/constraints"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// CeilDiv returns n / d rounded up. A zero divisor yields zero.
//
// Parameters:
//   - n: the dividend
//   - d: the divisor
//
// Returns:
//   - T: the smallest integer q such that q*d >= n
func CeilDiv[T constraints.Integer](n, d T) T {
	if d == 0 {
		return 0
	}
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// SaturatingSub returns a - b, clamped at zero for unsigned operands.
func SaturatingSub[T constraints.Unsigned](a, b T) T {
	if b >= a {
		return 0
	}
	return a - b
}

// MinOf returns the smallest of the provided values, or the zero value when none are given.
func MinOf[T constraints.Ordered](values ...T) T {
	var m T
	for i, v := range values {
		if i == 0 || v < m {
			m = v
		}
	}
	return m
}
