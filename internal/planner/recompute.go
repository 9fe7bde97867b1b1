package planner

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/combat"
	"github.com/udisondev/forgeplanner/internal/game/compare"
	"github.com/udisondev/forgeplanner/internal/game/stats"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

// View is everything derived from the current session inputs.
type View struct {
	Stats   model.ComputedStats `json:"stats"`
	Metrics combat.Metrics      `json:"metrics"`
	// Comparison is set while a comparison session is active.
	Comparison *compare.Result `json:"comparison,omitempty"`
}

func (v View) clone() View {
	v.Stats.StatCounts = maps.Clone(v.Stats.StatCounts)
	if v.Comparison != nil {
		c := *v.Comparison
		c.Original.Stats.StatCounts = maps.Clone(c.Original.Stats.StatCounts)
		c.Test.Stats.StatCounts = maps.Clone(c.Test.Stats.StatCounts)
		c.Deltas = slices.Clone(c.Deltas)
		v.Comparison = &c
	}
	return v
}

// MemoStats counts Recompute cache hits and misses.
type MemoStats struct {
	Hits   int
	Misses int
}

// memo remembers the last View. The key digests the inputs; the library
// pointer is compared separately because two loads may share a version string.
type memo struct {
	valid bool
	key   [blake2b.Size256]byte
	libs  *data.Libraries
	view  View
	stats MemoStats
}

func (m *memo) reset() {
	*m = memo{stats: m.stats}
}

// memoInput is the digested part of the recompute inputs.
type memoInput struct {
	Profile  model.Profile  `json:"profile"`
	Version  string         `json:"version"`
	Mode     string         `json:"mode"`
	Original *compare.Build `json:"original,omitempty"`
	Test     *compare.Build `json:"test,omitempty"`
}

// inputKey digests the inputs. sonic.ConfigStd sorts map keys, so equal
// inputs always produce the same bytes.
func inputKey(in memoInput) ([blake2b.Size256]byte, error) {
	raw, err := sonic.ConfigStd.Marshal(in)
	if err != nil {
		return [blake2b.Size256]byte{}, fmt.Errorf("encode recompute inputs: %w", err)
	}
	return blake2b.Sum256(raw), nil
}

// Recompute derives the stats, metrics and comparison of the current inputs.
// An unchanged input set returns the previous View.
func (p *Planner) Recompute() (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return View{}, ErrClosed
	}

	in := memoInput{
		Profile: p.profile,
		Version: p.libs.Version,
		Mode:    p.mode.String(),
	}
	if p.cmp.Comparing() {
		orig, err := p.cmp.Original()
		if err != nil {
			return View{}, err
		}
		test, err := p.cmp.Test()
		if err != nil {
			return View{}, err
		}
		in.Original, in.Test = &orig, &test
	}

	key, err := inputKey(in)
	if err != nil {
		// The memo is an optimisation; compute without it.
		slog.Warn("recompute memo disabled", "error", err)
		return compute(in, p.libs, p.mode), nil
	}
	if p.memo.valid && p.memo.key == key && p.memo.libs == p.libs {
		p.memo.stats.Hits++
		return p.memo.view.clone(), nil
	}

	view := compute(in, p.libs, p.mode)
	p.memo.valid = true
	p.memo.key = key
	p.memo.libs = p.libs
	p.memo.view = view
	p.memo.stats.Misses++

	slog.Debug("recomputed view",
		"version", in.Version,
		"mode", in.Mode,
		"comparing", in.Original != nil,
		"power", view.Stats.Power)
	return view.clone(), nil
}

// MemoStats returns the Recompute cache counters.
func (p *Planner) MemoStats() MemoStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memo.stats
}

func compute(in memoInput, libs *data.Libraries, mode techtree.Mode) View {
	s := stats.Compute(in.Profile, libs, mode)
	v := View{Stats: s, Metrics: combat.Derive(s)}
	if in.Original != nil && in.Test != nil {
		res := compare.Evaluate(in.Profile, *in.Original, *in.Test, libs, mode)
		v.Comparison = &res
	}
	return v
}
