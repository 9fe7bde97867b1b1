package model

// ComputedStats is the output of the stat aggregation engine.
// It is produced fresh from a profile and the libraries on every change.
type ComputedStats struct {
	Power float64 `json:"power"`

	BaseDamage       float64 `json:"baseDamage"`
	BaseHealth       float64 `json:"baseHealth"`
	TotalDamage      float64 `json:"totalDamage"`
	TotalHealth      float64 `json:"totalHealth"`
	DamageMultiplier float64 `json:"damageMultiplier"`
	HealthMultiplier float64 `json:"healthMultiplier"`

	SecondaryDamageMulti   float64 `json:"secondaryDamageMulti"`
	SecondaryHealthMulti   float64 `json:"secondaryHealthMulti"`
	MeleeDamageMultiplier  float64 `json:"meleeDamageMultiplier"`
	RangedDamageMultiplier float64 `json:"rangedDamageMultiplier"`

	// Chances are kept uncapped; consumers cap them at 1.
	CriticalChance     float64 `json:"criticalChance"`
	CriticalDamage     float64 `json:"criticalDamage"`
	DoubleDamageChance float64 `json:"doubleDamageChance"`
	BlockChance        float64 `json:"blockChance"`
	LifeSteal          float64 `json:"lifeSteal"`
	HealthRegen        float64 `json:"healthRegen"`

	AttackSpeedMultiplier  float64 `json:"attackSpeedMultiplier"`
	SkillCooldownReduction float64 `json:"skillCooldownReduction"`
	SkillDamageMultiplier  float64 `json:"skillDamageMultiplier"`
	SkillDps               float64 `json:"skillDps"`
	SkillHps               float64 `json:"skillHps"`

	WeaponAttackDuration float64 `json:"weaponAttackDuration"`
	WeaponWindupTime     float64 `json:"weaponWindupTime"`
	WeaponAttackRange    float64 `json:"weaponAttackRange"`
	IsRangedWeapon       bool    `json:"isRangedWeapon"`
	HasProjectile        bool    `json:"hasProjectile"`
	ProjectileSpeed      float64 `json:"projectileSpeed"`
	ProjectileRadius     float64 `json:"projectileRadius"`

	ExperienceMultiplier float64 `json:"experienceMultiplier"`
	SellPriceMultiplier  float64 `json:"sellPriceMultiplier"`
	ForgeFreebieChance   float64 `json:"forgeFreebieChance"`
	EggFreebieChance     float64 `json:"eggFreebieChance"`
	MountFreebieChance   float64 `json:"mountFreebieChance"`

	// StatCounts records how many sources contributed to each stat type.
	StatCounts map[string]int `json:"statCounts"`
}

// NamedValue is a single numeric field of ComputedStats.
type NamedValue struct {
	Name  string
	Value float64
}

// NumericFields lists the numeric fields in a fixed order (used for deltas and tables).
func (s ComputedStats) NumericFields() []NamedValue {
	return []NamedValue{
		{"power", s.Power},
		{"totalDamage", s.TotalDamage},
		{"totalHealth", s.TotalHealth},
		{"damageMultiplier", s.DamageMultiplier},
		{"healthMultiplier", s.HealthMultiplier},
		{"secondaryDamageMulti", s.SecondaryDamageMulti},
		{"secondaryHealthMulti", s.SecondaryHealthMulti},
		{"meleeDamageMultiplier", s.MeleeDamageMultiplier},
		{"rangedDamageMultiplier", s.RangedDamageMultiplier},
		{"criticalChance", s.CriticalChance},
		{"criticalDamage", s.CriticalDamage},
		{"doubleDamageChance", s.DoubleDamageChance},
		{"blockChance", s.BlockChance},
		{"lifeSteal", s.LifeSteal},
		{"healthRegen", s.HealthRegen},
		{"attackSpeedMultiplier", s.AttackSpeedMultiplier},
		{"skillCooldownReduction", s.SkillCooldownReduction},
		{"skillDamageMultiplier", s.SkillDamageMultiplier},
		{"skillDps", s.SkillDps},
		{"skillHps", s.SkillHps},
		{"weaponAttackDuration", s.WeaponAttackDuration},
		{"weaponWindupTime", s.WeaponWindupTime},
		{"weaponAttackRange", s.WeaponAttackRange},
		{"projectileSpeed", s.ProjectileSpeed},
		{"projectileRadius", s.ProjectileRadius},
		{"experienceMultiplier", s.ExperienceMultiplier},
		{"sellPriceMultiplier", s.SellPriceMultiplier},
		{"forgeFreebieChance", s.ForgeFreebieChance},
		{"eggFreebieChance", s.EggFreebieChance},
		{"mountFreebieChance", s.MountFreebieChance},
	}
}
