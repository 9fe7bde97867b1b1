package economy

import (
	"math"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
)

// Skill summon defaults when SkillBaseConfig.json is absent.
const (
	DefaultSkillSummonCost  = 200
	DefaultSkillSummonCount = 5
)

// Skill simulates ticket spending on skill summons.
type Skill struct {
	Level   int
	Bonuses Bonuses

	BaseCost      float64
	SummonCount   float64
	CostPerSummon int64
	Chances       data.DropChances
	// Points are war points per summoned skill, from guild-war day 0.
	Points map[string]float64
}

// NewSkill creates a skill summon simulator. The level is clamped to [MinLevel, MaxLevel].
func NewSkill(libs *data.Libraries, level int, b Bonuses) Skill {
	level = ClampLevel(level)
	cfg, _ := libs.SkillSummon()
	chances, _ := libs.SkillChances(level)

	s := Skill{
		Level:       level,
		Bonuses:     b,
		BaseCost:    cfg.SummonCost,
		SummonCount: float64(cfg.SummonCount),
		Chances:     chances,
		Points:      skillPoints(libs),
	}
	if s.BaseCost <= 0 {
		s.BaseCost = DefaultSkillSummonCost
	}
	if s.SummonCount <= 0 {
		s.SummonCount = DefaultSkillSummonCount
	}
	s.CostPerSummon = max(1, int64(math.Ceil(s.BaseCost*(1-techtree.ClampReduction(b.CostReduction)))))
	return s
}

// skillPoints reads Summon<Rarity>Skill rewards from guild-war day 0.
func skillPoints(libs *data.Libraries) map[string]float64 {
	points := make(map[string]float64, len(data.Rarities))
	day, ok := libs.GuildWarDay(0)
	for _, rarity := range data.Rarities {
		if !ok {
			points[rarity] = 0
			continue
		}
		pts, _ := day.TaskPoints("Summon" + rarity + "Skill")
		points[rarity] = pts
	}
	return points
}

// Pricing converts tickets into skills.
func (s Skill) Pricing() Pricing {
	return Pricing{
		UnitCost:        float64(s.CostPerSummon),
		OutputPerAction: s.SummonCount * s.Bonuses.Yield(),
	}
}

// SkillResult is the outcome of spending tickets.
type SkillResult struct {
	Plan
	TotalPoints float64
	Breakdown   []RarityShare
}

// Calculate returns the skills and war points of spending tickets.
func (s Skill) Calculate(tickets int64) SkillResult {
	plan := s.Pricing().Calculate(tickets)
	breakdown, total := shares(plan.Output, s.Chances, s.Points)
	return SkillResult{Plan: plan, TotalPoints: total, Breakdown: breakdown}
}

// Target returns the tickets needed to summon a number of skills.
func (s Skill) Target(skills float64) Plan {
	return s.Pricing().Target(skills)
}
