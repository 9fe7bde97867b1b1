package economy

import (
	"cmp"
	"math"
	"slices"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
)

// SecondsPerHammer is the forge progress granted by one hammer.
const SecondsPerHammer = 0.25

// Coin price model of forged items.
const (
	coinPriceBase     = 20.0
	coinPriceGrowth   = 1.01
	standardLevelSpan = 5
)

// ForgeBonuses are the tech modifiers of the forge.
type ForgeBonuses struct {
	CostReduction float64
	FreeChance    float64
	TimerSpeed    float64
}

// ForgeBonusesFrom extracts the forge modifiers.
func ForgeBonusesFrom(res techtree.Resolution) ForgeBonuses {
	return ForgeBonuses{
		CostReduction: techtree.ClampReduction(res.Total(TypeForgeUpgradeCost)),
		FreeChance:    max(0, res.Total(TypeFreeForgeChance)),
		TimerSpeed:    max(0, res.Total(TypeForgeTimerSpeed)),
	}
}

// UpgradeStats describe upgrading the forge from Level to Level+1.
type UpgradeStats struct {
	Level int
	// IsMax is set when no upgrade exists from this level.
	IsMax bool

	BaseCost    float64
	Cost        float64
	Tiers       int
	CostPerTier float64

	Duration         float64
	TotalTimeSeconds float64
	RequiredExp      float64
	ExpPerTier       float64

	RawHammers     int64
	Hammers        int64
	HammersPerTier int64
	GoldPerHammer  float64
}

// ForgeUpgrade computes the upgrade bill of a forge level.
func ForgeUpgrade(libs *data.Libraries, level int, b ForgeBonuses) UpgradeStats {
	up, ok := libs.ForgeUpgrade(level)
	if !ok {
		return UpgradeStats{Level: level, IsMax: true}
	}

	tiers := up.Tiers
	if tiers <= 0 {
		tiers = 1
	}
	s := UpgradeStats{
		Level:    level,
		BaseCost: up.Cost,
		Cost:     math.Floor(up.Cost * (1 - techtree.ClampReduction(b.CostReduction))),
		Tiers:    tiers,
		Duration: up.Duration,
	}
	s.CostPerTier = math.Floor(s.Cost / float64(tiers))
	s.TotalTimeSeconds = up.Duration / (1 + max(0, b.TimerSpeed))
	s.RequiredExp = up.Duration
	s.ExpPerTier = up.Duration / float64(tiers)

	s.RawHammers = int64(math.Ceil(up.Duration / SecondsPerHammer))
	s.Hammers = int64(math.Ceil(float64(s.RawHammers) * (1 - techtree.ClampReduction(b.FreeChance))))
	s.HammersPerTier = int64(math.Ceil(float64(s.Hammers) / float64(tiers)))
	if s.Hammers > 0 {
		s.GoldPerHammer = s.Cost / float64(s.Hammers)
	}
	return s
}

// WikiRow is one forge level of the reference table.
type WikiRow struct {
	UpgradeStats
	Chances data.DropChances
	// ItemExpPerHammer is the expected item exp of one forged item, 1 when unknown.
	ItemExpPerHammer float64
}

// Wiki lists every forge level that has drop chances.
func Wiki(libs *data.Libraries, b ForgeBonuses) []WikiRow {
	levels := libs.ForgeLevels()
	rows := make([]WikiRow, 0, len(levels))
	for _, level := range levels {
		chances, _ := libs.ForgeChances(level)
		rows = append(rows, WikiRow{
			UpgradeStats:     ForgeUpgrade(libs, level, b),
			Chances:          chances,
			ItemExpPerHammer: ItemExpPerHammer(libs, level),
		})
	}
	return rows
}

// ItemExpPerHammer returns Σ(percent/100 × tier exp) at a forge level, 1 when nothing is known.
func ItemExpPerHammer(libs *data.Libraries, level int) float64 {
	chances, _ := libs.ForgeChances(level)
	var exp float64
	for _, rarity := range sortedRarities(chances) {
		exp += chances[rarity] / 100 * libs.ForgeTierExp(rarity)
	}
	if exp == 0 {
		return 1
	}
	return exp
}

// Forge simulates hammer spending at one forge level.
type Forge struct {
	Level   int
	Bonuses ForgeBonuses
	Upgrade UpgradeStats
	chances data.DropChances
}

// NewForge creates a forge simulator. The level is clamped to [MinLevel, MaxLevel].
func NewForge(libs *data.Libraries, level int, b ForgeBonuses) Forge {
	level = ClampLevel(level)
	chances, _ := libs.ForgeChances(level)
	return Forge{
		Level:   level,
		Bonuses: b,
		Upgrade: ForgeUpgrade(libs, level, b),
		chances: chances,
	}
}

// Pricing is one hammer per action, yielding SecondsPerHammer exp plus the free chance.
func (f Forge) Pricing() Pricing {
	return Pricing{
		UnitCost:        1,
		OutputPerAction: SecondsPerHammer * (1 + f.Bonuses.FreeChance),
	}
}

// ForgeResult is the outcome of spending hammers.
type ForgeResult struct {
	Plan
	// EffectiveHammers counts free forges.
	EffectiveHammers float64
	Breakdown        []ForgeShare
}

// ForgeShare is the expected number of items of one rarity.
type ForgeShare struct {
	Rarity  string
	Percent float64
	Count   int64
}

// Calculate returns the exp and item breakdown of spending hammers.
func (f Forge) Calculate(hammers int64) ForgeResult {
	plan := f.Pricing().Calculate(hammers)
	eff := float64(plan.Actions) * (1 + f.Bonuses.FreeChance)
	return ForgeResult{
		Plan:             plan,
		EffectiveHammers: eff,
		Breakdown:        f.Breakdown(eff),
	}
}

// Target returns the hammers needed to gain exp.
func (f Forge) Target(exp float64) Plan {
	return f.Pricing().Target(exp)
}

// Breakdown splits forged items by rarity, most likely first.
func (f Forge) Breakdown(effectiveHammers float64) []ForgeShare {
	rarities := sortedRarities(f.chances)
	slices.SortStableFunc(rarities, func(a, b string) int {
		return cmp.Compare(f.chances[b], f.chances[a])
	})
	out := make([]ForgeShare, 0, len(rarities))
	for _, rarity := range rarities {
		p := f.chances[rarity]
		out = append(out, ForgeShare{
			Rarity:  rarity,
			Percent: p,
			Count:   int64(math.Floor(effectiveHammers * p / 100)),
		})
	}
	return out
}

// CoinRange is the estimated sell value of forged items.
type CoinRange struct {
	Min float64
	Max float64
}

// Coins estimates the coins from selling every item forged with hammers.
// The least likely rarity is priced at item level 1, the rest at
// maxItemLevel-5 for the minimum. The maximum prices everything at maxItemLevel.
func (f Forge) Coins(hammers int64, maxItemLevel int, priceBonusPercent float64) CoinRange {
	maxItemLevel = max(1, maxItemLevel)
	eff := float64(max(0, hammers)) * (1 + f.Bonuses.FreeChance)
	bonus := 1 + priceBonusPercent/100

	var lowest float64
	if len(f.chances) > 0 {
		lowest = math.Inf(1)
		for _, p := range f.chances {
			lowest = min(lowest, p)
		}
	}
	standard := 100 - lowest

	standardMin := coinPrice(max(1, maxItemLevel-standardLevelSpan))
	avgMin := (standard*standardMin + lowest*coinPriceBase) / 100

	return CoinRange{
		Min: avgMin * eff * bonus,
		Max: coinPrice(maxItemLevel) * eff * bonus,
	}
}

func coinPrice(itemLevel int) float64 {
	return coinPriceBase * math.Pow(coinPriceGrowth, float64(itemLevel-1))
}

// sortedRarities returns the keys of chances in rarity order, unknown names last.
func sortedRarities(chances data.DropChances) []string {
	out := make([]string, 0, len(chances))
	for _, r := range data.Rarities {
		if _, ok := chances[r]; ok {
			out = append(out, r)
		}
	}
	var extra []string
	for r := range chances {
		if !slices.Contains(data.Rarities, r) {
			extra = append(extra, r)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
