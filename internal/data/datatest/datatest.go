// Package datatest provides a small game data fixture for tests.
package datatest

import "github.com/udisondev/forgeplanner/internal/data"

// NewLibraries returns a small, internally consistent library set.
// Intended for tests from other packages that need game data.
func NewLibraries() *data.Libraries {
	l := &data.Libraries{
		Version: "test",

		TechEffects: map[string]data.TechEffect{
			"Damage":              testEffect("Damage", 5, 0.02, 0.01, "Damage", "Multiplier"),
			"Health":              testEffect("Health", 5, 0.02, 0.01, "Health", "Multiplier"),
			"CritChance":          testEffect("CritChance", 0, 0.01, 0.01, "CriticalChance", "Multiplier"),
			"ForgeUpgradeCost":    testEffect("ForgeUpgradeCost", 10, 0.05, 0.05, "ForgeUpgradeCost", "OneMinusMultiplier"),
			"FreeForgeChance":     testEffect("FreeForgeChance", 5, 0.01, 0.01, "FreeForgeChance", "Multiplier"),
			"ForgeTimerSpeed":     testEffect("ForgeTimerSpeed", 5, 0.1, 0.1, "ForgeTimerSpeed", "Multiplier"),
			"MountSummonCost":     testEffect("MountSummonCost", 5, 0.05, 0.05, "MountSummonCost", "OneMinusMultiplier"),
			"ExtraMountChance":    testEffect("ExtraMountChance", 5, 0.02, 0.02, "ExtraMountChance", "Multiplier"),
			"SkillSummonCost":     testEffect("SkillSummonCost", 5, 0.05, 0.05, "SkillSummonCost", "OneMinusMultiplier"),
			"ExtraSkillChance":    testEffect("ExtraSkillChance", 5, 0.02, 0.02, "ExtraSkillChance", "Multiplier"),
			"TechNodeUpgradeCost": testEffect("TechNodeUpgradeCost", 3, 0.1, 0.1, "TechNodeUpgradeCost", "OneMinusMultiplier"),
			"TechResearchTimer":   testEffect("TechResearchTimer", 3, 0.1, 0.1, "TechResearchTimer", "Multiplier"),
		},
		TechTrees: map[string]data.TechTreeLayout{
			"Forge": {Nodes: []data.TechNode{
				{ID: 1, Type: "ForgeUpgradeCost", Tier: 0},
				{ID: 2, Type: "FreeForgeChance", Tier: 1, Requirements: []int{1}},
				{ID: 3, Type: "ForgeTimerSpeed", Tier: 1, Requirements: []int{1}},
				{ID: 4, Type: "TechNodeUpgradeCost", Tier: 2, Requirements: []int{2, 3}},
			}},
			"Power": {Nodes: []data.TechNode{
				{ID: 10, Type: "Damage", Tier: 0},
				{ID: 11, Type: "Health", Tier: 0},
				{ID: 12, Type: "CritChance", Tier: 1, Requirements: []int{10, 11}},
			}},
			"SkillsPetTech": {Nodes: []data.TechNode{
				{ID: 20, Type: "SkillSummonCost", Tier: 0},
				{ID: 21, Type: "ExtraSkillChance", Tier: 1, Requirements: []int{20}},
				{ID: 22, Type: "MountSummonCost", Tier: 0},
				{ID: 23, Type: "ExtraMountChance", Tier: 1, Requirements: []int{22}},
				{ID: 24, Type: "TechResearchTimer", Tier: 0},
			}},
		},
		TechUpgrades: map[string]data.TechUpgradeTier{
			"0": testUpgradeTier(1),
			"1": testUpgradeTier(2),
			"2": testUpgradeTier(3),
		},

		ItemConfig: &data.ItemBalancingConfig{
			BaseDamage:            100,
			BaseHealth:            1000,
			BaseCriticalChance:    0.05,
			CriticalDamageBonus:   0.5,
			LevelScaling:          1.1,
			DamagePowerWeight:     10,
			HealthPowerWeight:     1,
			DefaultAttackDuration: 1.5,
		},
		Items: map[string]data.ItemBalance{
			"1_Weapon_1": {EquipmentStats: []data.Stat{testStat("Damage", "Additive", 50)}},
			"1_Weapon_2": {EquipmentStats: []data.Stat{testStat("Damage", "Additive", 80)}},
			"1_Armour_1": {EquipmentStats: []data.Stat{testStat("Health", "Additive", 500)}},
			"1_Helmet_1": {EquipmentStats: []data.Stat{testStat("Health", "Additive", 200)}},
			"1_Gloves_1": {EquipmentStats: []data.Stat{testStat("Damage", "Additive", 20)}},
			"1_Shoes_1":  {EquipmentStats: []data.Stat{testStat("Health", "Additive", 100)}},
		},
		Weapons: map[string]data.Weapon{
			"1_Weapon_1": {AttackDuration: 1.0, WindupTime: 0.2, AttackRange: 1.5},
			"1_Weapon_2": {AttackDuration: 2.0, WindupTime: 0.5, AttackRange: 8, IsRanged: true, ProjectileID: "arrow"},
		},
		Projectiles: map[string]data.Projectile{
			"arrow": {Speed: 12, Radius: 0.25},
		},
		SecondaryStats: map[string]data.SecondaryStat{
			"crit":   {StatNode: testNode("CriticalChance", "Multiplier")},
			"dmg":    {StatNode: testNode("DamageMulti", "Multiplier")},
			"regen":  {StatNode: testNode("HealthRegen", "Multiplier")},
			"melee":  {StatNode: testNode("MeleeDamageMulti", "Multiplier")},
			"ranged": {StatNode: testNode("RangedDamageMulti", "Multiplier")},
		},

		Pets: map[string]data.Pet{
			"cat": {Rarity: "Epic", Type: "Balanced"},
		},
		PetUpgrades: map[string]data.Progression{
			"Epic": {Levels: []data.LevelStats{
				{Level: 1, Stats: []data.Stat{testStat("Damage", "Additive", 10), testStat("Health", "Additive", 100)}},
				{Level: 2, Stats: []data.Stat{testStat("Damage", "Additive", 20), testStat("Health", "Additive", 200)}},
			}},
		},
		PetBalancing: map[string]data.PetBalance{
			"Balanced": {DamageMultiplier: 1.5, HealthMultiplier: 2},
		},
		Skills: map[string]data.Skill{
			"fireball": {Rarity: "Rare", Kind: data.SkillKindDamage, Cooldown: 10, Hits: 2, DamagePerLevel: []float64{100, 150, 200}},
			"heal":     {Rarity: "Rare", Kind: data.SkillKindHeal, Cooldown: 20, Hits: 1, HealingPerLevel: []float64{400, 600}},
		},
		SkillPassives: map[string]data.Progression{
			"Rare": {Levels: []data.LevelStats{
				{Level: 1, Stats: []data.Stat{testStat("Damage", "Additive", 5)}},
				{Level: 2, Stats: []data.Stat{testStat("Damage", "Additive", 10)}},
				{Level: 3, Stats: []data.Stat{testStat("Damage", "Additive", 15)}},
			}},
		},
		MountUpgrades: map[string]data.Progression{
			"Epic": {Levels: []data.LevelStats{
				{Level: 1, Stats: []data.Stat{testStat("Health", "Multiplier", 0.05)}},
				{Level: 2, Stats: []data.Stat{testStat("Health", "Multiplier", 0.1)}},
				{Level: 3, Stats: []data.Stat{testStat("Health", "Multiplier", 0.15)}},
				{Level: 4, Stats: []data.Stat{testStat("Health", "Multiplier", 0.2)}},
			}},
		},

		Skins: map[string]data.Skin{
			"s1": {SkinID: data.SkinID{Type: "Helmet", Idx: 1}, SetID: "knight"},
			"s2": {SkinID: data.SkinID{Type: "Armour", Idx: 1}, SetID: "knight"},
			"s3": {SkinID: data.SkinID{Type: "Gloves", Idx: 1}, SetID: "knight"},
			"s4": {SkinID: data.SkinID{Type: "Shoes", Idx: 1}, SetID: "knight"},
			"s5": {SkinID: data.SkinID{Type: "Weapon", Idx: 1}},
		},
		Sets: map[string]data.SetDef{
			"knight": {ID: "knight", BonusTiers: []data.SetBonusTier{
				{RequiredPieces: 2, BonusStats: data.StatList{Stats: []data.Stat{testStat("Damage", "Multiplier", 0.05)}}},
				{RequiredPieces: 4, BonusStats: data.StatList{Stats: []data.Stat{testStat("Health", "Multiplier", 0.10)}}},
			}},
		},

		ForgeUpgrades: map[string]data.ForgeUpgrade{
			"1": {Cost: 1000, Tiers: 4, Duration: 60},
			"2": {Cost: 3000, Tiers: 5, Duration: 300},
		},
		ForgeDropChances: map[string]data.DropChances{
			"1": {"Common": 80, "Rare": 20},
			"2": {"Common": 70, "Rare": 25, "Epic": 5},
			"3": {"Common": 60, "Rare": 30, "Epic": 10},
		},
		ForgeConfig: &data.ForgeConfig{TierExp: map[string]float64{"Common": 1, "Rare": 3, "Epic": 10}},
		SkillDropChances: map[string]data.DropChances{
			"0": {"Common": 0.7, "Rare": 0.25, "Epic": 0.05},
			"1": {"Common": 0.6, "Rare": 0.3, "Epic": 0.1},
		},
		MountDropChances: map[string]data.DropChances{
			"0": {"Common": 0.8, "Rare": 0.2},
			"1": {"Common": 0.7, "Rare": 0.25, "Epic": 0.05},
		},
		SkillConfig: &data.SummonConfig{SummonCost: 200, SummonCount: 5},
		MountConfig: &data.SummonConfig{SummonCost: 10, SummonCount: 1},
		GuildWarDays: map[string]data.GuildWarDay{
			"0": {DayPoints: 1, Tasks: []data.GuildWarTask{
				{Task: "SummonCommonSkill", Rewards: []data.Reward{{Amount: 1}}},
				{Task: "SummonRareSkill", Rewards: []data.Reward{{Amount: 5}}},
				{Task: "SummonEpicSkill", Rewards: []data.Reward{{Amount: 20}}},
			}},
			"2": {DayPoints: 2, Tasks: []data.GuildWarTask{
				{Task: "SummonCommonMount", Rewards: []data.Reward{{Amount: 2}}},
				{Task: "SummonRareMount", Rewards: []data.Reward{{Amount: 10}}},
				{Task: "SummonEpicMount", Rewards: []data.Reward{{Amount: 50}}},
			}},
		},
	}
	l.BuildIndexes()
	return l
}

func testNode(statType, nature string) data.StatNode {
	return data.StatNode{UniqueStat: data.UniqueStat{StatType: statType, StatNature: nature}}
}

func testStat(statType, nature string, value float64) data.Stat {
	return data.Stat{StatNode: testNode(statType, nature), Value: value}
}

func testEffect(typ string, maxLevel int, value, increase float64, statType, nature string) data.TechEffect {
	return data.TechEffect{
		Type:     typ,
		MaxLevel: maxLevel,
		Stats:    []data.TechStat{{Value: value, ValueIncrease: increase, StatNode: testNode(statType, nature)}},
	}
}

// testUpgradeTier builds 10 research levels costing 100*scale*(l+1) and lasting 60*scale*(l+1) seconds.
func testUpgradeTier(scale float64) data.TechUpgradeTier {
	levels := make([]data.TechUpgradeLevel, 0, 10)
	for l := range 10 {
		levels = append(levels, data.TechUpgradeLevel{
			Level:    l,
			Cost:     100 * scale * float64(l+1),
			Duration: 60 * scale * float64(l+1),
		})
	}
	return data.TechUpgradeTier{Levels: levels}
}

// Stat builds a stat value.
func Stat(statType, nature string, value float64) data.Stat {
	return testStat(statType, nature, value)
}

