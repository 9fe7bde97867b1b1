package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/forgeplanner/internal/model"
)

func TestDerive_WeaponDps(t *testing.T) {
	s := model.ComputedStats{
		TotalDamage:           100,
		AttackSpeedMultiplier: 1,
		WeaponAttackDuration:  1,
		CriticalChance:        0.5,
		CriticalDamage:        2,
		DoubleDamageChance:    0,
	}

	m := Derive(s)

	assert.Equal(t, 150.0, m.WeaponDps)
	assert.Equal(t, 150.0, m.EffectiveDps)
}

func TestCritMultiplier_CapsChance(t *testing.T) {
	assert.Equal(t, 3.0, CritMultiplier(2.0, 3))
	assert.Equal(t, 2.0, DoubleDamageMultiplier(1.5))
	assert.Equal(t, 1.25, DoubleDamageMultiplier(0.25))
}

func TestAttacksPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		duration float64
		want     float64
	}{
		{name: "normal", speed: 1.5, duration: 0.5, want: 3},
		{name: "zero duration", speed: 1, duration: 0, want: 0},
		{name: "negative duration", speed: 1, duration: -2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttacksPerSecond(tt.speed, tt.duration))
		})
	}
}

func TestDerive_Sustain(t *testing.T) {
	s := model.ComputedStats{
		TotalDamage:           200,
		TotalHealth:           1000,
		AttackSpeedMultiplier: 2,
		WeaponAttackDuration:  1,
		CriticalDamage:        1.5,
		DoubleDamageChance:    0.5,
		LifeSteal:             0.1,
		HealthRegen:           0.01,
		SkillDps:              40,
		SkillHps:              5,
	}

	m := Derive(s)

	// 200 * 2 * 1 * 1.5
	assert.Equal(t, 600.0, m.WeaponDps)
	assert.Equal(t, 640.0, m.EffectiveDps)
	assert.Equal(t, 10.0, m.RegenHps)
	assert.InDelta(t, 64.0, m.LifestealHps, 1e-9)
	assert.InDelta(t, 79.0, m.EffectiveHps, 1e-9)
}

func TestDerive_ZeroStatsAreFinite(t *testing.T) {
	m := Derive(model.ComputedStats{})
	assert.Zero(t, m.WeaponDps)
	assert.Zero(t, m.EffectiveHps)
	assert.Equal(t, 1.0, m.CritMultiplier)
	assert.Len(t, m.Fields(), 8)
}
