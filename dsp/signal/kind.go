package signal

import "fmt"

// Kind names a test signal shape.
type Kind int

const (
	KindSine Kind = iota
	KindNoise
	KindStep
	KindBurst
	KindSilence
)

var kindNames = [...]string{
	KindSine:    "sine",
	KindNoise:   "noise",
	KindStep:    "step",
	KindBurst:   "burst",
	KindSilence: "silence",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a name as printed by String back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown signal kind: %q", name)
}
