//go:build !fastmath

package envelope

// coeffTolerance bounds the difference between Coefficient and the exact
// math.Exp form.
const coeffTolerance = 1e-12
