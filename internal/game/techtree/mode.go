package techtree

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Mode selects which rank assignment the resolver reads.
type Mode int

const (
	// ModeActual uses the stored profile ranks.
	ModeActual Mode = iota
	// ModeEmpty treats every rank as 0.
	ModeEmpty
	// ModeMax treats every node as fully researched.
	ModeMax
)

const (
	// DefaultMaxLevel is the projected rank of a node whose type declares no MaxLevel.
	DefaultMaxLevel = 5
	// EditorMaxLevel caps manual rank edits when the type declares no MaxLevel.
	EditorMaxLevel = 1
	// MaxCostReduction bounds every cost reduction fraction.
	MaxCostReduction = 0.9
)

// ErrUnknownMode is returned by ParseMode for an unrecognised name.
var ErrUnknownMode = errors.New("unknown tree mode")

var modeNames = map[string]Mode{
	"actual": ModeActual,
	"my":     ModeActual,
	"empty":  ModeEmpty,
	"max":    ModeMax,
}

func (m Mode) String() string {
	switch m {
	case ModeActual:
		return "actual"
	case ModeEmpty:
		return "empty"
	case ModeMax:
		return "max"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ModeActual, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// ModeNames returns the accepted mode names, sorted.
func ModeNames() []string {
	return []string{"actual", "empty", "max", "my"}
}

// ClampReduction bounds a cost reduction fraction to [0, MaxCostReduction].
func ClampReduction(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	return min(x, MaxCostReduction)
}
