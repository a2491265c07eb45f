package common

import "cmp"

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// NextIndex returns the index after i in a ring of n elements, wrapping to 0 past the end.
// It returns 0 when n is not positive.
func NextIndex(i, n int) int {
	if n <= 0 || i >= n-1 {
		return 0
	}
	return i + 1
}
