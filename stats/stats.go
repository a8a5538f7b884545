// Package stats provides the aggregate math used by the exchange indicators.
package stats

import "math"

// Product returns the product of values. The product of no value is 1.
func Product(values ...float64) float64 {
	product := 1.0
	for _, v := range values {
		product *= v
	}
	return product
}

// NthRoot returns the n-th root of value.
//
// It is NaN for a negative value and a non integer root.
func NthRoot(n, value float64) float64 {
	return math.Pow(value, 1/n)
}

// GeometricMean returns the n-th root of the product of the n values.
func GeometricMean(values ...float64) float64 {
	return NthRoot(float64(len(values)), Product(values...))
}
