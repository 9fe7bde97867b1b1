package model

// Stat types as they appear in the game data (UniqueStat.StatType).
const (
	StatDamage             = "Damage"
	StatHealth             = "Health"
	StatDamageMulti        = "DamageMulti"
	StatHealthMulti        = "HealthMulti"
	StatMeleeDamageMulti   = "MeleeDamageMulti"
	StatRangedDamageMulti  = "RangedDamageMulti"
	StatCriticalChance     = "CriticalChance"
	StatCriticalMulti      = "CriticalMulti"
	StatDoubleDamageChance = "DoubleDamageChance"
	StatBlockChance        = "BlockChance"
	StatLifeSteal          = "LifeSteal"
	StatHealthRegen        = "HealthRegen"
	StatAttackSpeed        = "AttackSpeed"
	StatSkillCooldownMulti = "SkillCooldownMulti"
	StatSkillDamageMulti   = "SkillDamageMulti"
	StatExperience         = "Experience"
	StatSellPrice          = "SellPrice"
	StatFreeForgeChance    = "FreeForgeChance"
	StatExtraEggChance     = "ExtraEggChance"
	StatExtraMountChance   = "ExtraMountChance"
)

// Stat natures (UniqueStat.StatNature).
//
// Additive values on Damage/Health are flat amounts added to the base;
// every other nature is an additive fraction (0.05 = 5%).
const (
	NatureAdditive           = "Additive"
	NatureMultiplier         = "Multiplier"
	NatureOneMinusMultiplier = "OneMinusMultiplier"
)
