// Package gain applies gain curves and scalar gains to sample blocks.
//
// A gain curve has one factor per sample. Applying a curve to a signal of a
// different length is a caller bug, so the curve functions panic rather
// than truncate or pad.
package gain
