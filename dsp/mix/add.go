package mix

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// AddInto mixes src onto dst: dst[i] += src[i]. Lengths must match.
func AddInto(dst, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("mix: cannot add %d samples into %d", len(src), len(dst)))
	}
	if len(dst) == 0 {
		return
	}
	vecmath.AddBlockInPlace(dst, src)
}
