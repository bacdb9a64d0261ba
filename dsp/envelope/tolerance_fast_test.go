//go:build fastmath

package envelope

// coeffTolerance bounds the difference between Coefficient and the exact
// math.Exp form. FastExp is accurate to about 1e-7 relative.
const coeffTolerance = 1e-6
