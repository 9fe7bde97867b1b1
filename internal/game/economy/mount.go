package economy

import (
	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
)

// Mount simulates winder spending on mount summons.
type Mount struct {
	Level   int
	Bonuses Bonuses

	WindersPerSummon float64
	SummonsPerAction float64
	Chances          data.DropChances
	Points           map[string]float64
	// ExpectedPoints is Σ(chance × war points) of one summon.
	ExpectedPoints float64
}

// NewMount creates a mount summon simulator. The level is clamped to [MinLevel, MaxLevel].
func NewMount(libs *data.Libraries, level int, b Bonuses) Mount {
	level = ClampLevel(level)
	cfg, _ := libs.MountSummon()
	chances, _ := libs.MountChances(level)

	m := Mount{
		Level:            level,
		Bonuses:          b,
		WindersPerSummon: cfg.SummonCost,
		SummonsPerAction: float64(cfg.SummonCount),
		Chances:          chances,
		Points:           taskPoints(libs, "Mount"),
	}
	if m.WindersPerSummon <= 0 {
		m.WindersPerSummon = 1
	}
	if m.SummonsPerAction <= 0 {
		m.SummonsPerAction = 1
	}
	m.ExpectedPoints = expectedPoints(chances, m.Points)
	return m
}

// CostPerSummon returns winders per paid summon after the cost reduction.
func (m Mount) CostPerSummon() float64 {
	return m.WindersPerSummon * (1 - techtree.ClampReduction(m.Bonuses.CostReduction))
}

// Pricing converts winders into war points.
func (m Mount) Pricing() Pricing {
	return Pricing{
		UnitCost:        m.CostPerSummon(),
		OutputPerAction: m.SummonsPerAction * m.Bonuses.Yield() * m.ExpectedPoints,
	}
}

// MountResult is the outcome of spending winders.
type MountResult struct {
	Plan
	TotalSummons float64
	Breakdown    []RarityShare
}

// Calculate returns the summons and war points of spending winders.
func (m Mount) Calculate(winders int64) MountResult {
	plan := m.Pricing().Calculate(winders)
	total := float64(plan.Actions) * m.SummonsPerAction * m.Bonuses.Yield()
	breakdown, _ := shares(total, m.Chances, m.Points)
	return MountResult{Plan: plan, TotalSummons: total, Breakdown: breakdown}
}

// Target returns the winders needed to earn war points. Nothing can be
// planned without a positive expected value per summon.
func (m Mount) Target(points float64) Plan {
	return m.Pricing().Target(points)
}
