package combat

import "github.com/udisondev/forgeplanner/internal/model"

// Metrics are the derived per-second figures of a build. They are recomputed
// from ComputedStats on demand and never stored.
type Metrics struct {
	AttacksPerSecond       float64 `json:"attacksPerSecond"`
	CritMultiplier         float64 `json:"critMultiplier"`
	DoubleDamageMultiplier float64 `json:"doubleDamageMultiplier"`
	WeaponDps              float64 `json:"weaponDps"`
	EffectiveDps           float64 `json:"effectiveDps"`
	RegenHps               float64 `json:"regenHps"`
	LifestealHps           float64 `json:"lifestealHps"`
	EffectiveHps           float64 `json:"effectiveHps"`
}

// CapChance caps a probability at 1 before it becomes an expected-value multiplier.
func CapChance(p float64) float64 {
	return min(p, 1)
}

// CritMultiplier returns the expected damage multiplier of critical hits.
func CritMultiplier(critChance, critDamage float64) float64 {
	return 1 + CapChance(critChance)*(critDamage-1)
}

// DoubleDamageMultiplier returns the expected damage multiplier of double hits.
func DoubleDamageMultiplier(chance float64) float64 {
	return 1 + CapChance(chance)
}

// AttacksPerSecond returns weapon swings per second, 0 without a positive attack duration.
func AttacksPerSecond(attackSpeedMultiplier, attackDuration float64) float64 {
	if attackDuration <= 0 {
		return 0
	}
	return attackSpeedMultiplier / attackDuration
}

// Derive computes the combat metrics of a stat block.
func Derive(s model.ComputedStats) Metrics {
	m := Metrics{
		AttacksPerSecond:       AttacksPerSecond(s.AttackSpeedMultiplier, s.WeaponAttackDuration),
		CritMultiplier:         CritMultiplier(s.CriticalChance, s.CriticalDamage),
		DoubleDamageMultiplier: DoubleDamageMultiplier(s.DoubleDamageChance),
	}
	m.WeaponDps = s.TotalDamage * m.AttacksPerSecond * m.CritMultiplier * m.DoubleDamageMultiplier
	m.EffectiveDps = m.WeaponDps + s.SkillDps
	m.RegenHps = s.TotalHealth * s.HealthRegen
	m.LifestealHps = m.EffectiveDps * s.LifeSteal
	m.EffectiveHps = m.RegenHps + m.LifestealHps + s.SkillHps
	return m
}

// Fields lists the metrics in display order.
func (m Metrics) Fields() []model.NamedValue {
	return []model.NamedValue{
		{Name: "attacksPerSecond", Value: m.AttacksPerSecond},
		{Name: "critMultiplier", Value: m.CritMultiplier},
		{Name: "doubleDamageMultiplier", Value: m.DoubleDamageMultiplier},
		{Name: "weaponDps", Value: m.WeaponDps},
		{Name: "effectiveDps", Value: m.EffectiveDps},
		{Name: "regenHps", Value: m.RegenHps},
		{Name: "lifestealHps", Value: m.LifestealHps},
		{Name: "effectiveHps", Value: m.EffectiveHps},
	}
}
