package data

import (
	"slices"
	"strconv"

	"github.com/udisondev/forgeplanner/internal/model"
)

// Libraries is the parsed, read-only game data of one version.
//
// Every accessor is nil-safe and reports a miss with ok=false; callers treat a
// miss as a zero contribution. A Libraries value is never mutated after loading.
type Libraries struct {
	Version string

	TechEffects  map[string]TechEffect
	TechTrees    map[string]TechTreeLayout
	TechUpgrades map[string]TechUpgradeTier

	ItemConfig     *ItemBalancingConfig
	Items          map[string]ItemBalance
	Weapons        map[string]Weapon
	Projectiles    map[string]Projectile
	SecondaryStats map[string]SecondaryStat

	Pets          map[string]Pet
	PetUpgrades   map[string]Progression
	PetBalancing  map[string]PetBalance
	Skills        map[string]Skill
	SkillPassives map[string]Progression
	MountUpgrades map[string]Progression

	Skins map[string]Skin
	Sets  map[string]SetDef

	ForgeUpgrades    map[string]ForgeUpgrade
	ForgeDropChances map[string]DropChances
	ForgeConfig      *ForgeConfig
	SkillDropChances map[string]DropChances
	MountDropChances map[string]DropChances
	SkillConfig      *SummonConfig
	MountConfig      *SummonConfig
	GuildWarDays     map[string]GuildWarDay

	skinIndex map[SkinID]Skin
}

// Empty returns a Libraries with nothing loaded.
func Empty() *Libraries {
	return &Libraries{}
}

// BuildIndexes precomputes lookup indexes. The loader calls it once after decoding;
// lookups fall back to scanning when it was never called.
func (l *Libraries) BuildIndexes() {
	if l == nil {
		return
	}
	l.skinIndex = make(map[SkinID]Skin, len(l.Skins))
	for _, key := range sortedKeys(l.Skins) {
		s := l.Skins[key]
		if _, dup := l.skinIndex[s.SkinID]; !dup {
			l.skinIndex[s.SkinID] = s
		}
	}
}

// TechEffect returns the effect of a tech node type.
func (l *Libraries) TechEffect(nodeType string) (TechEffect, bool) {
	if l == nil {
		return TechEffect{}, false
	}
	e, ok := l.TechEffects[nodeType]
	return e, ok
}

// TechTree returns the node layout of a tree.
func (l *Libraries) TechTree(tree model.TreeName) (TechTreeLayout, bool) {
	if l == nil {
		return TechTreeLayout{}, false
	}
	t, ok := l.TechTrees[string(tree)]
	return t, ok
}

// TechUpgrade returns the research cost table of a node tier.
func (l *Libraries) TechUpgrade(tier int) (TechUpgradeTier, bool) {
	if l == nil {
		return TechUpgradeTier{}, false
	}
	t, ok := l.TechUpgrades[strconv.Itoa(tier)]
	return t, ok
}

// ItemBalancing returns the player base values, zero when not loaded.
func (l *Libraries) ItemBalancing() ItemBalancingConfig {
	if l == nil || l.ItemConfig == nil {
		return ItemBalancingConfig{}
	}
	return *l.ItemConfig
}

// Item returns base stats of an item.
func (l *Libraries) Item(key string) (ItemBalance, bool) {
	if l == nil {
		return ItemBalance{}, false
	}
	it, ok := l.Items[key]
	return it, ok
}

// Weapon returns weapon timing data.
func (l *Libraries) Weapon(key string) (Weapon, bool) {
	if l == nil {
		return Weapon{}, false
	}
	w, ok := l.Weapons[key]
	return w, ok
}

// Projectile returns projectile data.
func (l *Libraries) Projectile(id string) (Projectile, bool) {
	if l == nil || id == "" {
		return Projectile{}, false
	}
	p, ok := l.Projectiles[id]
	return p, ok
}

// SecondaryStat returns the definition of a secondary stat.
func (l *Libraries) SecondaryStat(id string) (SecondaryStat, bool) {
	if l == nil {
		return SecondaryStat{}, false
	}
	s, ok := l.SecondaryStats[id]
	return s, ok
}

// Pet returns a pet definition.
func (l *Libraries) Pet(id string) (Pet, bool) {
	if l == nil {
		return Pet{}, false
	}
	p, ok := l.Pets[id]
	return p, ok
}

// PetLevelStats returns the stats of a pet rarity at a level.
func (l *Libraries) PetLevelStats(rarity string, level int) []Stat {
	if l == nil {
		return nil
	}
	return l.PetUpgrades[rarity].At(level)
}

// PetBalance returns the balancing multipliers of a pet type.
func (l *Libraries) PetBalance(petType string) (PetBalance, bool) {
	if l == nil {
		return PetBalance{}, false
	}
	b, ok := l.PetBalancing[petType]
	return b, ok
}

// Skill returns an active skill definition.
func (l *Libraries) Skill(id string) (Skill, bool) {
	if l == nil {
		return Skill{}, false
	}
	s, ok := l.Skills[id]
	return s, ok
}

// SkillPassiveStats returns the passive stats of a skill rarity at a level.
func (l *Libraries) SkillPassiveStats(rarity string, level int) []Stat {
	if l == nil {
		return nil
	}
	return l.SkillPassives[rarity].At(level)
}

// MountLevelStats returns the stats of a mount rarity at a level.
func (l *Libraries) MountLevelStats(rarity string, level int) []Stat {
	if l == nil {
		return nil
	}
	return l.MountUpgrades[rarity].At(level)
}

// Skin finds the skin entry matching type and idx.
func (l *Libraries) Skin(skinType string, idx int) (Skin, bool) {
	if l == nil {
		return Skin{}, false
	}
	id := SkinID{Type: skinType, Idx: idx}
	if l.skinIndex != nil {
		s, ok := l.skinIndex[id]
		return s, ok
	}
	for _, key := range sortedKeys(l.Skins) {
		if s := l.Skins[key]; s.SkinID == id {
			return s, true
		}
	}
	return Skin{}, false
}

// Set returns a set definition.
func (l *Libraries) Set(id string) (SetDef, bool) {
	if l == nil {
		return SetDef{}, false
	}
	s, ok := l.Sets[id]
	return s, ok
}

// ForgeUpgrade returns the upgrade cost from level to level+1.
func (l *Libraries) ForgeUpgrade(level int) (ForgeUpgrade, bool) {
	if l == nil {
		return ForgeUpgrade{}, false
	}
	u, ok := l.ForgeUpgrades[strconv.Itoa(level)]
	return u, ok
}

// ForgeChances returns the forge drop percents at a forge level.
func (l *Libraries) ForgeChances(level int) (DropChances, bool) {
	if l == nil {
		return nil, false
	}
	c, ok := l.ForgeDropChances[strconv.Itoa(level)]
	return c, ok
}

// ForgeLevels returns the forge levels that have drop chances, ascending.
func (l *Libraries) ForgeLevels() []int {
	if l == nil {
		return nil
	}
	levels := make([]int, 0, len(l.ForgeDropChances))
	for key := range l.ForgeDropChances {
		if n, err := strconv.Atoi(key); err == nil {
			levels = append(levels, n)
		}
	}
	slices.Sort(levels)
	return levels
}

// ForgeTierExp returns the exp granted by forging an item of the given rarity.
func (l *Libraries) ForgeTierExp(rarity string) float64 {
	if l == nil || l.ForgeConfig == nil {
		return 0
	}
	return l.ForgeConfig.TierExp[rarity]
}

// SkillChances returns skill summon chances for a 1-based summon level.
// The table is keyed by level-1.
func (l *Libraries) SkillChances(level int) (DropChances, bool) {
	if l == nil {
		return nil, false
	}
	c, ok := l.SkillDropChances[strconv.Itoa(max(0, level-1))]
	return c, ok
}

// MountChances returns mount summon chances for a 1-based summon level.
func (l *Libraries) MountChances(level int) (DropChances, bool) {
	if l == nil {
		return nil, false
	}
	c, ok := l.MountDropChances[strconv.Itoa(max(0, level-1))]
	return c, ok
}

// SkillSummon returns skill summon pricing.
func (l *Libraries) SkillSummon() (SummonConfig, bool) {
	if l == nil || l.SkillConfig == nil {
		return SummonConfig{}, false
	}
	return *l.SkillConfig, true
}

// MountSummon returns mount summon pricing.
func (l *Libraries) MountSummon() (SummonConfig, bool) {
	if l == nil || l.MountConfig == nil {
		return SummonConfig{}, false
	}
	return *l.MountConfig, true
}

// GuildWarDay returns one guild-war day.
func (l *Libraries) GuildWarDay(day int) (GuildWarDay, bool) {
	if l == nil {
		return GuildWarDay{}, false
	}
	d, ok := l.GuildWarDays[strconv.Itoa(day)]
	return d, ok
}

// TaskPoints finds the first day (in day order) declaring the task and returns its points.
func (l *Libraries) TaskPoints(task string) float64 {
	if l == nil {
		return 0
	}
	days := make([]int, 0, len(l.GuildWarDays))
	for key := range l.GuildWarDays {
		if n, err := strconv.Atoi(key); err == nil {
			days = append(days, n)
		}
	}
	slices.Sort(days)
	for _, day := range days {
		if pts, ok := l.GuildWarDays[strconv.Itoa(day)].TaskPoints(task); ok {
			return pts
		}
	}
	return 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
