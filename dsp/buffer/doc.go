// Package buffer provides Block, a reusable multi-channel float64 sample
// block. Processing functions accept raw [][]float64 or []float64 slices;
// Block helps callers own that storage, reuse it between blocks and move
// samples across the float32 host boundary without allocating.
package buffer
