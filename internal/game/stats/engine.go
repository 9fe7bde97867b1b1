// Package stats aggregates every stat source of a profile into ComputedStats.
package stats

import (
	"math"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/combat"
	"github.com/udisondev/forgeplanner/internal/game/setbonus"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

// Compute aggregates item, secondary, tech, set, mount, pet and skill
// contributions of a profile. It is pure: the profile and libraries are only
// read, and identical inputs give bit-identical output. Missing library entries
// contribute zero.
func Compute(p model.Profile, libs *data.Libraries, mode techtree.Mode) model.ComputedStats {
	acc := newAccumulator()

	addItems(acc, p.Items, libs)
	addTech(acc, techtree.Resolve(libs, p.TechTree, mode))
	addSets(acc, setbonus.Resolve(p.Items, libs))
	addMount(acc, p.Mount.Active, libs)
	addPets(acc, p.Pets, libs)
	addSkillPassives(acc, p.Skills, libs)

	cfg := libs.ItemBalancing()
	s := model.ComputedStats{StatCounts: acc.counts}

	s.BaseDamage = cfg.BaseDamage + acc.flat[model.StatDamage]
	s.BaseHealth = cfg.BaseHealth + acc.flat[model.StatHealth]
	s.DamageMultiplier = 1 + acc.rate[model.StatDamage]
	s.HealthMultiplier = 1 + acc.rate[model.StatHealth]
	s.SecondaryDamageMulti = acc.rate[model.StatDamageMulti]
	s.SecondaryHealthMulti = acc.rate[model.StatHealthMulti]
	s.MeleeDamageMultiplier = acc.rate[model.StatMeleeDamageMulti]
	s.RangedDamageMultiplier = acc.rate[model.StatRangedDamageMulti]

	s.CriticalChance = cfg.BaseCriticalChance + acc.rate[model.StatCriticalChance]
	s.CriticalDamage = 1 + cfg.CriticalDamageBonus + acc.rate[model.StatCriticalMulti]
	s.DoubleDamageChance = acc.rate[model.StatDoubleDamageChance]
	s.BlockChance = acc.rate[model.StatBlockChance]
	s.LifeSteal = acc.rate[model.StatLifeSteal]
	s.HealthRegen = acc.rate[model.StatHealthRegen]

	s.AttackSpeedMultiplier = 1 + acc.rate[model.StatAttackSpeed]
	s.SkillCooldownReduction = acc.rate[model.StatSkillCooldownMulti]
	s.SkillDamageMultiplier = 1 + acc.rate[model.StatSkillDamageMulti]

	s.ExperienceMultiplier = 1 + acc.rate[model.StatExperience]
	s.SellPriceMultiplier = 1 + acc.rate[model.StatSellPrice]
	s.ForgeFreebieChance = acc.rate[model.StatFreeForgeChance]
	s.EggFreebieChance = acc.rate[model.StatExtraEggChance]
	s.MountFreebieChance = acc.rate[model.StatExtraMountChance]

	applyWeapon(&s, p.Items[model.SlotWeapon], libs, cfg)

	styleMulti := s.MeleeDamageMultiplier
	if s.IsRangedWeapon {
		styleMulti = s.RangedDamageMultiplier
	}
	s.TotalDamage = s.BaseDamage * s.DamageMultiplier * (1 + s.SecondaryDamageMulti + styleMulti)
	s.TotalHealth = s.BaseHealth * s.HealthMultiplier * (1 + s.SecondaryHealthMulti)
	s.Power = s.TotalDamage*cfg.DamagePowerWeight + s.TotalHealth*cfg.HealthPowerWeight

	s.SkillDps, s.SkillHps = skillOutput(p.Skills, libs, s)
	return s
}

// LevelMultiplier scales an item base stat to its level.
func LevelMultiplier(scaling float64, level int) float64 {
	if scaling <= 0 || level <= 1 {
		return 1
	}
	return math.Pow(scaling, float64(level-1))
}

func addItems(acc *accumulator, items model.Items, libs *data.Libraries) {
	scaling := libs.ItemBalancing().LevelScaling
	for _, slot := range model.Slots {
		item := items[slot]
		if item == nil {
			continue
		}
		if balance, ok := libs.Item(data.ItemKey(item.Age, slot.ItemType(), item.Idx)); ok {
			mult := LevelMultiplier(scaling, item.Level)
			for _, st := range balance.EquipmentStats {
				acc.add(st.Type(), st.Nature(), st.Value*mult)
			}
		}
		for _, roll := range item.Secondary {
			def, ok := libs.SecondaryStat(roll.StatID)
			if !ok {
				continue
			}
			acc.addRate(def.StatNode.UniqueStat.StatType, ClampRoll(roll.Value)/100)
		}
	}
}

// ClampRoll bounds a secondary roll percentage to [0, 100].
func ClampRoll(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 100)
}

func addTech(acc *accumulator, res techtree.Resolution) {
	for _, b := range res.Bonuses {
		acc.add(b.StatType, b.StatNature, b.Value)
	}
}

func addSets(acc *accumulator, res setbonus.Result) {
	for _, b := range res.Stats {
		acc.add(b.StatType, b.StatNature, b.Value)
	}
}

func addMount(acc *accumulator, mount *model.MountConfig, libs *data.Libraries) {
	if mount == nil {
		return
	}
	for _, st := range libs.MountLevelStats(mount.Rarity, mount.Level) {
		acc.add(st.Type(), st.Nature(), st.Value)
	}
}

func addPets(acc *accumulator, pets []model.PetConfig, libs *data.Libraries) {
	for _, pc := range pets {
		pet, ok := libs.Pet(pc.ID)
		if !ok {
			continue
		}
		balance, ok := libs.PetBalance(pet.Type)
		if !ok {
			balance = data.PetBalance{DamageMultiplier: 1, HealthMultiplier: 1}
		}
		for _, st := range libs.PetLevelStats(pet.Rarity, pc.Level) {
			value := st.Value
			switch st.Type() {
			case model.StatDamage:
				value *= balance.DamageMultiplier
			case model.StatHealth:
				value *= balance.HealthMultiplier
			}
			acc.add(st.Type(), st.Nature(), value)
		}
	}
}

func addSkillPassives(acc *accumulator, skills []model.SkillConfig, libs *data.Libraries) {
	for _, sc := range skills {
		skill, ok := libs.Skill(sc.ID)
		if !ok {
			continue
		}
		for _, st := range libs.SkillPassiveStats(skill.Rarity, sc.Level) {
			acc.add(st.Type(), st.Nature(), st.Value)
		}
	}
}

func applyWeapon(s *model.ComputedStats, item *model.EquippedItem, libs *data.Libraries, cfg data.ItemBalancingConfig) {
	s.WeaponAttackDuration = cfg.DefaultAttackDuration
	if item == nil {
		return
	}
	w, ok := libs.Weapon(data.ItemKey(item.Age, model.SlotWeapon.ItemType(), item.Idx))
	if !ok {
		return
	}
	if w.AttackDuration > 0 {
		s.WeaponAttackDuration = w.AttackDuration
	}
	s.WeaponWindupTime = w.WindupTime
	s.WeaponAttackRange = w.AttackRange
	s.IsRangedWeapon = w.IsRanged
	if proj, ok := libs.Projectile(w.ProjectileID); ok {
		s.HasProjectile = true
		s.ProjectileSpeed = proj.Speed
		s.ProjectileRadius = proj.Radius
	}
}

// skillOutput returns the damage and healing per second of the equipped skills.
func skillOutput(skills []model.SkillConfig, libs *data.Libraries, s model.ComputedStats) (dps, hps float64) {
	critMulti := combat.CritMultiplier(s.CriticalChance, s.CriticalDamage)
	cdr := techtree.ClampReduction(s.SkillCooldownReduction)

	for _, sc := range skills {
		skill, ok := libs.Skill(sc.ID)
		if !ok || skill.Cooldown <= 0 {
			continue
		}
		cooldown := skill.Cooldown * (1 - cdr)
		hits := float64(max(skill.Hits, 1))

		switch skill.Kind {
		case data.SkillKindHeal:
			hps += levelValue(skill.HealingPerLevel, sc.Level) * hits * s.SkillDamageMultiplier / cooldown
		default:
			dps += levelValue(skill.DamagePerLevel, sc.Level) * hits * s.SkillDamageMultiplier * critMulti / cooldown
		}
	}
	return dps, hps
}

// levelValue returns values[level-1], 0 outside the table.
func levelValue(values []float64, level int) float64 {
	if level < 1 || level > len(values) {
		return 0
	}
	return values[level-1]
}
