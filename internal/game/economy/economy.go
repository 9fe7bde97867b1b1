// Package economy simulates forge, mount summon and skill summon spending.
//
// Every simulator runs in two directions: Calculate turns an available
// resource into output, Target turns a desired output into the resource
// needed. Cost reductions come from the tech tree and are clamped to
// techtree.MaxCostReduction; extra chances are a linear (1 + chance) yield.
package economy

import (
	"math"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
)

// Calculator level bounds.
const (
	MinLevel = 1
	MaxLevel = 100
)

// Tech node types read by the simulators.
const (
	TypeForgeUpgradeCost  = "ForgeUpgradeCost"
	TypeFreeForgeChance   = "FreeForgeChance"
	TypeForgeTimerSpeed   = "ForgeTimerSpeed"
	TypeMountSummonCost   = "MountSummonCost"
	TypeExtraMountChance  = "ExtraMountChance"
	TypeSkillSummonCost   = "SkillSummonCost"
	TypeExtraSkillChance  = "ExtraSkillChance"
	TypeExtraSummonChance = "ExtraSummonChance"
)

// Rounding tolerances absorb float noise, relative to the value. Floor is
// stricter than ceil so a calculated plan always round-trips through Target.
const (
	ceilTolerance  = 1e-9
	floorTolerance = 1e-10
)

// Bonuses are the tech modifiers of one summon system.
type Bonuses struct {
	CostReduction float64
	ExtraChance   float64
}

// Yield returns the output multiplier of the extra chance.
func (b Bonuses) Yield() float64 {
	return 1 + max(0, b.ExtraChance)
}

// MountBonuses extracts the mount summon modifiers.
func MountBonuses(res techtree.Resolution) Bonuses {
	return Bonuses{
		CostReduction: techtree.ClampReduction(res.Total(TypeMountSummonCost)),
		ExtraChance:   res.Total(TypeExtraMountChance),
	}
}

// SkillBonuses extracts the skill summon modifiers.
func SkillBonuses(res techtree.Resolution) Bonuses {
	return Bonuses{
		CostReduction: techtree.ClampReduction(res.Total(TypeSkillSummonCost)),
		ExtraChance:   res.Total(TypeExtraSkillChance) + res.Total(TypeExtraSummonChance),
	}
}

// Pricing converts between a resource and an output through paid actions.
type Pricing struct {
	// UnitCost is the resource spent per action.
	UnitCost float64
	// OutputPerAction is the output of one action, yield bonus included.
	OutputPerAction float64
}

// Plan is the outcome of a calculation in either direction.
type Plan struct {
	Resource int64
	Actions  int64
	Output   float64
}

// Calculate spends up to resource on whole actions.
func (p Pricing) Calculate(resource int64) Plan {
	plan := Plan{Resource: max(0, resource)}
	if plan.Resource == 0 || p.UnitCost <= 0 {
		return plan
	}
	plan.Actions = floorTolerant(float64(plan.Resource) / p.UnitCost)
	plan.Output = float64(plan.Actions) * p.OutputPerAction
	return plan
}

// Target returns the whole actions and resource needed to reach output.
func (p Pricing) Target(output float64) Plan {
	if output <= 0 || p.OutputPerAction <= 0 {
		return Plan{}
	}
	actions := ceilTolerant(output / p.OutputPerAction)
	return Plan{
		Resource: ceilTolerant(float64(actions) * max(0, p.UnitCost)),
		Actions:  actions,
		Output:   float64(actions) * p.OutputPerAction,
	}
}

// ClampLevel bounds a calculator level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

// RarityShare is the expected outcome of one rarity.
type RarityShare struct {
	Rarity        string
	Chance        float64
	Count         float64
	PointsPerUnit float64
	TotalPoints   float64
}

// expectedPoints returns Σ chance × points over the rarities.
func expectedPoints(chances data.DropChances, points map[string]float64) float64 {
	var total float64
	for _, rarity := range data.Rarities {
		total += chances[rarity] * points[rarity]
	}
	return total
}

// shares splits a unit count across rarities in rarity order.
func shares(units float64, chances data.DropChances, points map[string]float64) ([]RarityShare, float64) {
	var (
		out   []RarityShare
		total float64
	)
	for _, rarity := range data.Rarities {
		chance, ok := chances[rarity]
		if !ok {
			continue
		}
		count := units * chance
		pts := count * points[rarity]
		out = append(out, RarityShare{
			Rarity:        rarity,
			Chance:        chance,
			Count:         count,
			PointsPerUnit: points[rarity],
			TotalPoints:   pts,
		})
		total += pts
	}
	return out, total
}

// taskPoints reads war points for "Summon<Rarity><kind>" tasks.
func taskPoints(libs *data.Libraries, kind string) map[string]float64 {
	points := make(map[string]float64, len(data.Rarities))
	for _, rarity := range data.Rarities {
		points[rarity] = libs.TaskPoints("Summon" + rarity + kind)
	}
	return points
}

func ceilTolerant(x float64) int64 {
	if !finitePositive(x) {
		return 0
	}
	return int64(math.Ceil(x - ceilTolerance*max(1, x)))
}

func floorTolerant(x float64) int64 {
	if !finitePositive(x) {
		return 0
	}
	return int64(math.Floor(x + floorTolerance*max(1, x)))
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
