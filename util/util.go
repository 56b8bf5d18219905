package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Median returns the median of nums without modifying it. For an even count
// it is the mean of the two middle values. ok is false for an empty slice.
func Median[A Number](nums []A) (median float64, ok bool) {
	if len(nums) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(nums))
	for i, v := range nums {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

func Abs[A constraints.Signed | constraints.Float](n A) A {
	if n < 0 {
		return -n
	}
	return n
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

// CeilDiv is integer division rounding toward positive infinity for b > 0.
func CeilDiv[A constraints.Integer](a, b A) A {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
