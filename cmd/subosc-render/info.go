package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func printInfo(w io.Writer) error {
	f := cpu.DetectFeatures()
	_, err := fmt.Fprintf(w, "arch: %s\ngo: %s\nsimd: %s\n", f.Architecture, runtime.Version(), simdLevel(f))
	return err
}

// simdLevel names the widest kernel family the block math dispatches to.
func simdLevel(f cpu.Features) string {
	switch {
	case f.ForceGeneric:
		return "generic (forced)"
	case f.HasAVX2:
		return "avx2"
	case f.HasSSE2:
		return "sse2"
	case f.HasNEON:
		return "neon"
	default:
		return "generic"
	}
}
