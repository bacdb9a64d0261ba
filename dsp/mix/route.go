package mix

import "fmt"

// Routing selects where a mono signal goes in a multi-channel block.
// RouteAll mixes into every channel; a positive value names one channel,
// counted from 1, whose content is replaced.
type Routing int

// RouteAll adds the signal to every output channel.
const RouteAll Routing = 0

// Channel returns the routing for the 1-based channel n.
func Channel(n int) Routing {
	return Routing(n)
}

// Index returns the 0-based channel index, or -1 for RouteAll.
func (r Routing) Index() int {
	if r <= RouteAll {
		return -1
	}
	return int(r) - 1
}

func (r Routing) String() string {
	if r == RouteAll {
		return "all"
	}
	return fmt.Sprintf("ch%d", int(r))
}

// Route writes signal into outputs according to r and reports whether any
// channel was touched.
//
// RouteAll adds signal onto the existing content of every channel. A single
// channel selection overwrites that channel and leaves the others alone. A
// selection beyond the available channels, or a negative one, is ignored.
func Route(outputs [][]float64, signal []float64, r Routing) bool {
	if r == RouteAll {
		for _, out := range outputs {
			AddInto(out, signal)
		}
		return len(outputs) > 0
	}

	idx := r.Index()
	if idx < 0 || idx >= len(outputs) {
		return false
	}

	out := outputs[idx]
	if len(out) != len(signal) {
		panic(fmt.Sprintf("mix: output channel has %d samples, signal has %d", len(out), len(signal)))
	}
	copy(out, signal)

	return true
}
