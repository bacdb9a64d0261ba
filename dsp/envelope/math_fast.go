//go:build fastmath

package envelope

import "github.com/meko-christian/algo-approx"

// mathExp evaluates the coefficient exponential with the fast approximation.
// Coefficients are recomputed on parameter changes only.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
