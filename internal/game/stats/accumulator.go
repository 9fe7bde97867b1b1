package stats

import "github.com/udisondev/forgeplanner/internal/model"

// accumulator collects contributions per stat type. Flat amounts (Additive
// Damage/Health) and fractional rates are tracked separately.
type accumulator struct {
	flat   map[string]float64
	rate   map[string]float64
	counts map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		flat:   make(map[string]float64),
		rate:   make(map[string]float64),
		counts: make(map[string]int),
	}
}

// add records one source. Zero values are not counted as contributors.
func (a *accumulator) add(statType, nature string, value float64) {
	if value == 0 || statType == "" {
		return
	}
	if isFlat(statType, nature) {
		a.flat[statType] += value
	} else {
		a.rate[statType] += value
	}
	a.counts[statType]++
}

// addRate records a fractional source regardless of its nature.
func (a *accumulator) addRate(statType string, value float64) {
	if value == 0 || statType == "" {
		return
	}
	a.rate[statType] += value
	a.counts[statType]++
}

func isFlat(statType, nature string) bool {
	return nature == model.NatureAdditive && (statType == model.StatDamage || statType == model.StatHealth)
}
