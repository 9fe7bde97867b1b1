package compare

import (
	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/combat"
	"github.com/udisondev/forgeplanner/internal/game/stats"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

// Side is the computed outcome of one build.
type Side struct {
	Stats   model.ComputedStats `json:"stats"`
	Metrics combat.Metrics      `json:"metrics"`
}

// Delta is the change of one field from the original build to the test build.
type Delta struct {
	Field    string  `json:"field"`
	Original float64 `json:"original"`
	Test     float64 `json:"test"`
	Delta    float64 `json:"delta"`
	Percent  float64 `json:"percent"`
}

// Result holds both sides of a comparison and their field deltas.
type Result struct {
	Original Side    `json:"original"`
	Test     Side    `json:"test"`
	Deltas   []Delta `json:"deltas"`
}

// Result evaluates the current session against the rest of profile p.
func (c *Comparator) Result(p model.Profile, libs *data.Libraries, mode techtree.Mode) (Result, error) {
	if !c.Comparing() {
		return Result{}, ErrNotComparing
	}
	return Evaluate(p, c.original, c.test, libs, mode), nil
}

// Evaluate runs the stat engine twice, once per build layered onto p.
func Evaluate(p model.Profile, original, test Build, libs *data.Libraries, mode techtree.Mode) Result {
	orig := evaluate(original.Apply(p), libs, mode)
	tst := evaluate(test.Apply(p), libs, mode)

	deltas := Deltas(orig.Stats.NumericFields(), tst.Stats.NumericFields())
	deltas = append(deltas, Deltas(orig.Metrics.Fields(), tst.Metrics.Fields())...)
	return Result{Original: orig, Test: tst, Deltas: deltas}
}

func evaluate(p model.Profile, libs *data.Libraries, mode techtree.Mode) Side {
	s := stats.Compute(p, libs, mode)
	return Side{Stats: s, Metrics: combat.Derive(s)}
}

// Deltas pairs two field lists by position. Both lists must come from the same producer.
func Deltas(original, test []model.NamedValue) []Delta {
	n := min(len(original), len(test))
	out := make([]Delta, 0, n)
	for i := range n {
		d := test[i].Value - original[i].Value
		out = append(out, Delta{
			Field:    original[i].Name,
			Original: original[i].Value,
			Test:     test[i].Value,
			Delta:    d,
			Percent:  Percent(original[i].Value, d),
		})
	}
	return out
}

// Percent returns delta relative to original in percent. A change from zero
// counts as 100%.
func Percent(original, delta float64) float64 {
	if original == 0 {
		if delta == 0 {
			return 0
		}
		return 100
	}
	return delta / original * 100
}

// Find returns the delta of a named field.
func (r Result) Find(field string) (Delta, bool) {
	for _, d := range r.Deltas {
		if d.Field == field {
			return d, true
		}
	}
	return Delta{}, false
}
