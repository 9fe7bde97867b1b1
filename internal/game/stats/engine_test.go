package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/data/datatest"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

func item(idx, level int, rolls ...model.SecondaryRoll) *model.EquippedItem {
	return &model.EquippedItem{Age: 1, Idx: idx, Level: level, Secondary: rolls}
}

func roll(id string, v float64) model.SecondaryRoll {
	return model.SecondaryRoll{StatID: id, Value: v}
}

func fullProfile() model.Profile {
	p := model.NewProfile("full")
	p.Items[model.SlotWeapon] = item(1, 3, roll("dmg", 12.5), roll("melee", 4))
	p.Items[model.SlotHelmet] = &model.EquippedItem{Age: 1, Idx: 1, Level: 2, Skin: &model.SkinRef{Type: "Helmet", Idx: 1}}
	p.Items[model.SlotBody] = &model.EquippedItem{Age: 1, Idx: 1, Level: 5, Skin: &model.SkinRef{Type: "Armour", Idx: 1}}
	p.Items[model.SlotGloves] = item(1, 1, roll("crit", 7.5))
	p.TechTree[model.TreePower] = map[int]int{10: 3, 11: 2, 12: 1}
	p.TechTree[model.TreeForge] = map[int]int{1: 2, 2: 1}
	p.Mount.Active = &model.MountConfig{Rarity: "Epic", Level: 2}
	p.Pets = []model.PetConfig{{ID: "cat", Level: 2}}
	p.Skills = []model.SkillConfig{{ID: "fireball", Level: 2}, {ID: "heal", Level: 1}}
	return p
}

func TestCompute_WeaponOnly(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("solo")
	p.Items[model.SlotWeapon] = item(1, 1)

	s := Compute(p, libs, techtree.ModeActual)

	assert.Equal(t, 150.0, s.BaseDamage)
	assert.Equal(t, 150.0, s.TotalDamage)
	assert.Equal(t, 1000.0, s.TotalHealth)
	assert.Equal(t, 2500.0, s.Power)
	assert.Equal(t, 0.05, s.CriticalChance)
	assert.Equal(t, 1.5, s.CriticalDamage)
	assert.Equal(t, 1.0, s.WeaponAttackDuration)
	assert.Equal(t, 1.5, s.WeaponAttackRange)
	assert.False(t, s.IsRangedWeapon)
	assert.False(t, s.HasProjectile)
	assert.Equal(t, map[string]int{"Damage": 1}, s.StatCounts)
}

func TestCompute_RangedWeapon(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("archer")
	p.Items[model.SlotWeapon] = item(2, 1, roll("ranged", 50), roll("melee", 30))

	s := Compute(p, libs, techtree.ModeActual)

	assert.True(t, s.IsRangedWeapon)
	assert.True(t, s.HasProjectile)
	assert.Equal(t, 12.0, s.ProjectileSpeed)
	assert.Equal(t, 0.25, s.ProjectileRadius)
	assert.Equal(t, 2.0, s.WeaponAttackDuration)
	// Only the ranged multiplier applies to a ranged weapon: 180 * 1.5.
	assert.Equal(t, 270.0, s.TotalDamage)
	assert.Equal(t, 0.3, s.MeleeDamageMultiplier)
}

func TestCompute_ItemLevelScaling(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("scaled")
	p.Items[model.SlotGloves] = item(1, 3)

	s := Compute(p, libs, techtree.ModeActual)

	assert.InDelta(t, 100+20*1.1*1.1, s.BaseDamage, 1e-9)
	assert.Equal(t, 1.0, LevelMultiplier(0, 10))
	assert.Equal(t, 1.0, LevelMultiplier(2, 0))
}

func TestCompute_SourcesAndCounts(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("sources")
	p.Items[model.SlotWeapon] = item(1, 1)
	p.Pets = []model.PetConfig{{ID: "cat", Level: 2}}
	p.Skills = []model.SkillConfig{{ID: "fireball", Level: 2}, {ID: "heal", Level: 1}}

	s := Compute(p, libs, techtree.ModeActual)

	// 100 base + 50 weapon + 20*1.5 pet + 10 and 5 skill passives.
	assert.Equal(t, 195.0, s.BaseDamage)
	// 1000 base + 200*2 pet.
	assert.Equal(t, 1400.0, s.BaseHealth)
	assert.Equal(t, 4, s.StatCounts["Damage"])
	assert.Equal(t, 1, s.StatCounts["Health"])

	// fireball: 150 * 2 hits * crit 1.025 / 10s.
	assert.InDelta(t, 30.75, s.SkillDps, 1e-9)
	// heal: 400 / 20s.
	assert.Equal(t, 20.0, s.SkillHps)
}

func TestCompute_CriticalChanceIsNotCapped(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("crit")
	p.Items[model.SlotWeapon] = item(1, 1, roll("crit", 100))
	p.Items[model.SlotRing] = item(9, 1, roll("crit", 250))

	s := Compute(p, libs, techtree.ModeActual)

	assert.InDelta(t, 2.05, s.CriticalChance, 1e-12)
	assert.Equal(t, 2, s.StatCounts["CriticalChance"])
}

func TestCompute_TechModes(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("tech")
	p.TechTree[model.TreePower] = map[int]int{10: 2}

	actual := Compute(p, libs, techtree.ModeActual)
	empty := Compute(p, libs, techtree.ModeEmpty)
	maxed := Compute(p, libs, techtree.ModeMax)

	assert.InDelta(t, 1.03, actual.DamageMultiplier, 1e-12)
	assert.Equal(t, 1.0, empty.DamageMultiplier)
	assert.InDelta(t, 1.06, maxed.DamageMultiplier, 1e-12)
	assert.InDelta(t, 0.10, maxed.CriticalChance, 1e-12)
	assert.InDelta(t, 0.05, maxed.ForgeFreebieChance, 1e-12)
	assert.InDelta(t, 0.10, maxed.MountFreebieChance, 1e-12)
	assert.Equal(t, 2, p.TechTree.Rank(model.TreePower, 10))
}

func TestCompute_SetsAndMount(t *testing.T) {
	libs := datatest.NewLibraries()
	p := fullProfile()

	s := Compute(p, libs, techtree.ModeEmpty)

	// Two knight pieces: +5% damage.
	assert.InDelta(t, 1.05, s.DamageMultiplier, 1e-12)
	// Epic mount level 2: +10% health.
	assert.InDelta(t, 1.1, s.HealthMultiplier, 1e-12)
}

func TestCompute_Deterministic(t *testing.T) {
	libs := datatest.NewLibraries()
	p := fullProfile()
	before := p.Clone()

	first := Compute(p, libs, techtree.ModeActual)
	for range 20 {
		assert.Equal(t, first, Compute(p, libs, techtree.ModeActual))
	}
	assert.Equal(t, before, p, "Compute must not modify the profile")
}

func TestCompute_MissingData(t *testing.T) {
	p := fullProfile()
	p.Pets = append(p.Pets, model.PetConfig{ID: "ghost", Level: 1})
	p.Skills = append(p.Skills, model.SkillConfig{ID: "unknown", Level: 1})

	require.NotPanics(t, func() {
		s := Compute(p, nil, techtree.ModeMax)
		assert.Zero(t, s.TotalDamage)
		assert.Zero(t, s.SkillDps)
	})

	s := Compute(p, data.Empty(), techtree.ModeActual)
	assert.Zero(t, s.Power)
	assert.Equal(t, 1.0, s.DamageMultiplier)
	assert.Empty(t, s.StatCounts)

	partial := datatest.NewLibraries()
	partial.Weapons = nil
	partial.PetBalancing = nil
	s = Compute(p, partial, techtree.ModeActual)
	assert.Equal(t, 1.5, s.WeaponAttackDuration)
	assert.NotZero(t, s.TotalDamage)
}

func TestSkillOutput(t *testing.T) {
	libs := datatest.NewLibraries()
	base := model.ComputedStats{CriticalChance: 3, CriticalDamage: 2, SkillDamageMultiplier: 1}

	tests := []struct {
		name    string
		skills  []model.SkillConfig
		cdr     float64
		wantDps float64
		wantHps float64
	}{
		// Crit chance 3 is capped at 1: 100 * 2 * 2 / 10.
		{name: "crit capped", skills: []model.SkillConfig{{ID: "fireball", Level: 1}}, wantDps: 40},
		{name: "level beyond table", skills: []model.SkillConfig{{ID: "fireball", Level: 4}}},
		{name: "level zero", skills: []model.SkillConfig{{ID: "heal", Level: 0}}},
		// Cooldown 20 * (1 - 0.5).
		{name: "cooldown reduction", skills: []model.SkillConfig{{ID: "heal", Level: 2}}, cdr: 0.5, wantHps: 60},
		// Reduction is capped at 0.9: 400 / (20 * 0.1).
		{name: "cooldown reduction capped", skills: []model.SkillConfig{{ID: "heal", Level: 1}}, cdr: 3, wantHps: 400 / (20 * (1 - 0.9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.SkillCooldownReduction = tt.cdr
			dps, hps := skillOutput(tt.skills, libs, s)
			assert.InDelta(t, tt.wantDps, dps, 1e-9)
			assert.InDelta(t, tt.wantHps, hps, 1e-9)
		})
	}
}

func TestClampRoll(t *testing.T) {
	assert.Equal(t, 0.0, ClampRoll(-5))
	assert.Equal(t, 42.0, ClampRoll(42))
	assert.Equal(t, 100.0, ClampRoll(180))
}
