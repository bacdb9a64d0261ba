// Package core holds the small shared pieces every processing package in
// algo-subosc relies on: the host processor configuration, slice reuse
// helpers, numeric helpers and the float32/float64 host boundary copies.
package core
