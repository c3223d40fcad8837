package utils

import (
	"golang.org/x/exp/constraints"
)

func Abs[T constraints.Integer](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// CountDigits returns the number of decimal digits of n, the sign is not counted.
func CountDigits[I constraints.Integer](n I) int {
	count := 1
	if n < 0 {
		n = -n
	}

	for n >= 10 {
		n /= 10
		count++
	}

	return count
}

// MaxWidth returns the maximum printed width of the integers, including the minus sign.
func MaxWidth[I constraints.Integer](integers []I) int {
	width := 0
	for _, n := range integers {
		w := CountDigits(n)
		if n < 0 {
			w++
		}
		width = max(width, w)
	}
	return width
}
