// Package mix folds multi-channel blocks down to mono and routes a mono
// signal back into a multi-channel block.
//
// Both directions assume a well-formed block: every channel has the same
// length. A ragged block is a programming error and panics instead of being
// silently truncated.
package mix
