package data

import "strconv"

// Rarities in ascending order. Summon tables and war-point tasks use these names.
var Rarities = []string{"Common", "Rare", "Epic", "Legendary", "Ultimate", "Mythic"}

// UniqueStat identifies a stat by type and nature.
type UniqueStat struct {
	StatType   string `json:"StatType"`
	StatNature string `json:"StatNature"`
}

// StatNode wraps UniqueStat the way the game data nests it.
type StatNode struct {
	UniqueStat UniqueStat `json:"UniqueStat"`
}

// Stat is a single stat value.
type Stat struct {
	StatNode StatNode `json:"StatNode"`
	Value    float64  `json:"Value"`
}

// Type returns the stat type.
func (s Stat) Type() string { return s.StatNode.UniqueStat.StatType }

// Nature returns the stat nature.
func (s Stat) Nature() string { return s.StatNode.UniqueStat.StatNature }

// StatList is a list of stats under a "Stats" key.
type StatList struct {
	Stats []Stat `json:"Stats"`
}

// --- Tech tree ---

// TechStat is one stat entry of a tech node effect.
type TechStat struct {
	Value         float64  `json:"Value"`
	ValueIncrease float64  `json:"ValueIncrease"`
	StatNode      StatNode `json:"StatNode"`
}

// TechEffect describes what a tech node type does (TechTreeLibrary.json).
type TechEffect struct {
	Type     string     `json:"Type"`
	MaxLevel int        `json:"MaxLevel"`
	Stats    []TechStat `json:"Stats"`
}

// TechNode is a node position in a tree (TechTreePositionLibrary.json).
type TechNode struct {
	ID           int    `json:"Id"`
	Type         string `json:"Type"`
	Tier         int    `json:"Tier"`
	Requirements []int  `json:"Requirements"`
}

// TechTreeLayout lists the nodes of one tree.
type TechTreeLayout struct {
	Nodes []TechNode `json:"Nodes"`
}

// Node finds a node by id.
func (t TechTreeLayout) Node(id int) (TechNode, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return TechNode{}, false
}

// TechUpgradeLevel is the cost of researching one level of a node tier.
type TechUpgradeLevel struct {
	Level    int     `json:"Level"`
	Cost     float64 `json:"Cost"`
	Duration float64 `json:"Duration"`
}

// TechUpgradeTier holds the per-level research costs of a tier (TechTreeUpgradeLibrary.json).
type TechUpgradeTier struct {
	Levels []TechUpgradeLevel `json:"Levels"`
}

// Level finds the research cost of level l.
func (t TechUpgradeTier) Level(l int) (TechUpgradeLevel, bool) {
	for _, lv := range t.Levels {
		if lv.Level == l {
			return lv, true
		}
	}
	return TechUpgradeLevel{}, false
}

// --- Items ---

// ItemBalancingConfig holds player base values (ItemBalancingConfig.json).
type ItemBalancingConfig struct {
	BaseDamage            float64 `json:"BaseDamage"`
	BaseHealth            float64 `json:"BaseHealth"`
	BaseCriticalChance    float64 `json:"BaseCriticalChance"`
	CriticalDamageBonus   float64 `json:"CriticalDamageBonus"`
	LevelScaling          float64 `json:"LevelScaling"`
	DamagePowerWeight     float64 `json:"DamagePowerWeight"`
	HealthPowerWeight     float64 `json:"HealthPowerWeight"`
	DefaultAttackDuration float64 `json:"DefaultAttackDuration"`
}

// ItemBalance holds the base stats of an item (ItemBalancingLibrary.json).
type ItemBalance struct {
	EquipmentStats []Stat `json:"EquipmentStats"`
}

// Weapon holds weapon timing data (WeaponLibrary.json).
type Weapon struct {
	AttackDuration float64 `json:"AttackDuration"`
	WindupTime     float64 `json:"WindupTime"`
	AttackRange    float64 `json:"AttackRange"`
	IsRanged       bool    `json:"IsRanged"`
	ProjectileID   string  `json:"ProjectileId"`
}

// Projectile holds projectile data (ProjectilesLibrary.json).
type Projectile struct {
	Speed  float64 `json:"Speed"`
	Radius float64 `json:"Radius"`
}

// SecondaryStat describes a rollable secondary stat (SecondaryStatLibrary.json).
type SecondaryStat struct {
	StatNode StatNode `json:"StatNode"`
}

// ItemKey builds the ItemBalancingLibrary / WeaponLibrary key of an item.
func ItemKey(age int, itemType string, idx int) string {
	return strconv.Itoa(age) + "_" + itemType + "_" + strconv.Itoa(idx)
}

// --- Progressions (pets, mounts, skill passives) ---

// LevelStats are the stats granted at one level.
type LevelStats struct {
	Level int    `json:"Level"`
	Stats []Stat `json:"Stats"`
}

// Progression is a per-level stat table keyed by rarity.
type Progression struct {
	Levels []LevelStats `json:"Levels"`
}

// At returns the stats for the given level, nil if absent.
func (p Progression) At(level int) []Stat {
	for _, lv := range p.Levels {
		if lv.Level == level {
			return lv.Stats
		}
	}
	return nil
}

// Pet describes a pet (PetLibrary.json).
type Pet struct {
	Rarity string `json:"Rarity"`
	Type   string `json:"Type"`
}

// PetBalance scales pet stats per pet type (PetBalancingLibrary.json).
type PetBalance struct {
	DamageMultiplier float64 `json:"DamageMultiplier"`
	HealthMultiplier float64 `json:"HealthMultiplier"`
}

// Skill kinds.
const (
	SkillKindDamage = "Damage"
	SkillKindHeal   = "Heal"
)

// Skill describes an active skill (SkillLibrary.json).
type Skill struct {
	Rarity          string    `json:"Rarity"`
	Kind            string    `json:"Kind"`
	Cooldown        float64   `json:"Cooldown"`
	Hits            int       `json:"Hits"`
	DamagePerLevel  []float64 `json:"DamagePerLevel"`
	HealingPerLevel []float64 `json:"HealingPerLevel"`
}

// --- Skins & sets ---

// SkinID identifies a skin.
type SkinID struct {
	Type string `json:"Type"`
	Idx  int    `json:"Idx"`
}

// Skin is a skin library entry (SkinsLibrary.json).
type Skin struct {
	SkinID SkinID `json:"SkinId"`
	SetID  string `json:"SetId,omitempty"`
}

// SetBonusTier is one activation threshold of a set.
type SetBonusTier struct {
	RequiredPieces int      `json:"RequiredPieces"`
	BonusStats     StatList `json:"BonusStats"`
}

// SetDef is a set definition (SetsLibrary.json).
type SetDef struct {
	ID         string         `json:"Id"`
	BonusTiers []SetBonusTier `json:"BonusTiers"`
}

// --- Economy ---

// ForgeUpgrade is the cost of upgrading the forge from a level to the next (ForgeUpgradeLibrary.json).
type ForgeUpgrade struct {
	Cost     float64 `json:"Cost"`
	Tiers    int     `json:"Tiers"`
	Duration float64 `json:"Duration"`
}

// ForgeConfig holds the exp value of each forged rarity (ForgeConfig.json).
type ForgeConfig struct {
	TierExp map[string]float64 `json:"TierExp"`
}

// DropChances maps rarity -> chance. Forge tables use percents, summon tables fractions.
type DropChances map[string]float64

// SummonConfig holds summon pricing (SkillBaseConfig.json, MountSummonConfig.json).
type SummonConfig struct {
	SummonCost  float64 `json:"SummonCost"`
	SummonCount int     `json:"SummonCount"`
}

// Reward is a guild-war task reward.
type Reward struct {
	Amount float64 `json:"Amount"`
}

// GuildWarTask is a scored guild-war task.
type GuildWarTask struct {
	Task    string   `json:"Task"`
	Rewards []Reward `json:"Rewards"`
}

// GuildWarDay is one day of the guild war (GuildWarDayConfigLibrary.json).
type GuildWarDay struct {
	DayPoints float64        `json:"DayPoints"`
	Tasks     []GuildWarTask `json:"Tasks"`
}

// TaskPoints returns the first reward amount of the named task.
func (d GuildWarDay) TaskPoints(task string) (float64, bool) {
	for _, t := range d.Tasks {
		if t.Task != task {
			continue
		}
		if len(t.Rewards) == 0 {
			return 0, true
		}
		return t.Rewards[0].Amount, true
	}
	return 0, false
}
