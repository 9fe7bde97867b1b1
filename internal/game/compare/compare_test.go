package compare

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/forgeplanner/internal/data/datatest"
	"github.com/udisondev/forgeplanner/internal/game/stats"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

func weapon(idx int) *model.EquippedItem {
	return &model.EquippedItem{Age: 1, Idx: idx, Level: 1}
}

func liveProfile() model.Profile {
	p := model.NewProfile("live")
	p.Items[model.SlotWeapon] = weapon(1)
	p.Items[model.SlotGloves] = &model.EquippedItem{
		Age:       1,
		Idx:       1,
		Level:     1,
		Secondary: []model.SecondaryRoll{{StatID: "crit", Value: 5}},
	}
	p.TechTree[model.TreePower] = map[int]int{10: 1}
	return p
}

func TestComparator_StateMachine(t *testing.T) {
	c := New()
	p := liveProfile()

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, uuid.Nil, c.Session())

	_, err := c.Test()
	assert.ErrorIs(t, err, ErrNotComparing)
	assert.ErrorIs(t, c.SetTestItem(model.SlotWeapon, weapon(2)), ErrNotComparing)
	assert.ErrorIs(t, c.SetOriginalMount(nil), ErrNotComparing)
	assert.ErrorIs(t, c.Discard(), ErrNotComparing)
	assert.ErrorIs(t, c.ApplyTest(&p), ErrNotComparing)
	_, err = c.Result(p, datatest.NewLibraries(), techtree.ModeActual)
	assert.ErrorIs(t, err, ErrNotComparing)

	id, err := c.Enter(p)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, c.Session())
	assert.Equal(t, "comparing", c.State().String())

	_, err = c.Enter(p)
	assert.ErrorIs(t, err, ErrAlreadyComparing)

	require.NoError(t, c.Discard())
	assert.False(t, c.Comparing())
	assert.Equal(t, uuid.Nil, c.Session())

	next, err := c.Enter(p)
	require.NoError(t, err)
	assert.NotEqual(t, id, next)
}

func TestComparator_Result(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("solo")
	p.Items[model.SlotWeapon] = weapon(1)

	c := New()
	_, err := c.Enter(p)
	require.NoError(t, err)
	require.NoError(t, c.SetTestItem(model.SlotWeapon, weapon(2)))

	res, err := c.Result(p, libs, techtree.ModeActual)
	require.NoError(t, err)

	assert.Equal(t, 150.0, res.Original.Stats.TotalDamage)
	assert.Equal(t, 180.0, res.Test.Stats.TotalDamage)
	assert.True(t, res.Test.Stats.IsRangedWeapon)

	dmg, ok := res.Find("totalDamage")
	require.True(t, ok)
	assert.Equal(t, 30.0, dmg.Delta)
	assert.InDelta(t, 20, dmg.Percent, 1e-12)

	power, ok := res.Find("power")
	require.True(t, ok)
	assert.Equal(t, 2500.0, power.Original)
	assert.Equal(t, 2800.0, power.Test)
	assert.InDelta(t, 12, power.Percent, 1e-12)

	_, ok = res.Find("weaponDps")
	assert.True(t, ok)
	_, ok = res.Find("nope")
	assert.False(t, ok)
}

func TestComparator_MountDelta(t *testing.T) {
	libs := datatest.NewLibraries()
	p := model.NewProfile("rider")

	c := New()
	_, err := c.Enter(p)
	require.NoError(t, err)
	require.NoError(t, c.SetTestMount(&model.MountConfig{Rarity: "Epic", Level: 4}))

	res, err := c.Result(p, libs, techtree.ModeActual)
	require.NoError(t, err)

	hp, ok := res.Find("totalHealth")
	require.True(t, ok)
	assert.Equal(t, 1000.0, hp.Original)
	assert.InDelta(t, 1200, hp.Test, 1e-9)
	assert.InDelta(t, 20, hp.Percent, 1e-9)
}

// Editing the test side never moves the original side, and discarding leaves
// the live profile exactly as it was.
func TestComparator_Isolation(t *testing.T) {
	libs := datatest.NewLibraries()
	p := liveProfile()
	before := p.Clone()
	want := stats.Compute(p, libs, techtree.ModeActual)

	c := New()
	_, err := c.Enter(p)
	require.NoError(t, err)

	first, err := c.Result(p, libs, techtree.ModeActual)
	require.NoError(t, err)
	assert.Equal(t, want, first.Original.Stats)

	replacement := weapon(2)
	require.NoError(t, c.SetTestItem(model.SlotWeapon, replacement))
	require.NoError(t, c.SetTestItem(model.SlotGloves, nil))
	require.NoError(t, c.SetTestMount(&model.MountConfig{Rarity: "Epic", Level: 3}))
	replacement.Level = 50

	second, err := c.Result(p, libs, techtree.ModeActual)
	require.NoError(t, err)
	assert.Equal(t, first.Original, second.Original)
	assert.NotEqual(t, first.Test, second.Test)

	test, err := c.Test()
	require.NoError(t, err)
	assert.Equal(t, 1, test.Items[model.SlotWeapon].Level)

	require.NoError(t, c.Discard())
	assert.Equal(t, before, p)
}

func TestComparator_Commit(t *testing.T) {
	tests := []struct {
		name       string
		commit     func(c *Comparator, p *model.Profile) error
		wantWeapon int
		wantGloves bool
	}{
		{
			name:       "keep original",
			commit:     (*Comparator).KeepOriginal,
			wantWeapon: 1,
		},
		{
			name:       "apply test",
			commit:     (*Comparator).ApplyTest,
			wantWeapon: 2,
			wantGloves: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := liveProfile()
			c := New()
			_, err := c.Enter(p)
			require.NoError(t, err)

			require.NoError(t, c.SetOriginalItem(model.SlotGloves, nil))
			require.NoError(t, c.SetTestItem(model.SlotWeapon, weapon(2)))
			require.NoError(t, c.SetTestMount(&model.MountConfig{Rarity: "Epic", Level: 1}))

			require.NoError(t, tt.commit(c, &p))

			assert.False(t, c.Comparing())
			assert.Equal(t, tt.wantWeapon, p.Items[model.SlotWeapon].Idx)
			_, hasGloves := p.Items[model.SlotGloves]
			assert.Equal(t, tt.wantGloves, hasGloves)
			assert.Equal(t, tt.wantGloves, p.Mount.Active != nil)
			assert.Equal(t, map[int]int{10: 1}, p.TechTree[model.TreePower])
		})
	}
}

func TestComparator_CommitNilProfile(t *testing.T) {
	c := New()
	_, err := c.Enter(liveProfile())
	require.NoError(t, err)

	assert.Error(t, c.ApplyTest(nil))
	assert.True(t, c.Comparing())
}

func TestComparator_BaselineAndReset(t *testing.T) {
	p := liveProfile()
	c := New()
	_, err := c.Enter(p)
	require.NoError(t, err)

	changed, err := c.ChangedSlots()
	require.NoError(t, err)
	assert.Empty(t, changed)

	require.NoError(t, c.SetTestItem(model.SlotWeapon, weapon(2)))
	require.NoError(t, c.SetTestItem(model.SlotRing, weapon(1)))
	require.NoError(t, c.SetOriginalItem(model.SlotHelmet, weapon(1)))

	changed, err = c.ChangedSlots()
	require.NoError(t, err)
	assert.Equal(t, []model.Slot{model.SlotWeapon, model.SlotRing}, changed)

	base, err := c.Baseline()
	require.NoError(t, err)
	assert.Equal(t, BuildOf(p), base)

	require.NoError(t, c.ResetTest())
	test, err := c.Test()
	require.NoError(t, err)
	assert.Equal(t, base, test)

	orig, err := c.Original()
	require.NoError(t, err)
	assert.Contains(t, orig.Items, model.SlotHelmet)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		delta    float64
		want     float64
	}{
		{"unchanged zero", 0, 0, 0},
		{"from zero", 0, 5, 100},
		{"from zero down", 0, -5, 100},
		{"quarter up", 200, 50, 25},
		{"halved", 100, -50, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.original, tt.delta))
		})
	}
}

func TestBuild_ApplyDoesNotMutate(t *testing.T) {
	p := liveProfile()
	before := p.Clone()

	b := Build{Items: model.Items{model.SlotWeapon: weapon(2)}}
	out := b.Apply(p)

	assert.Equal(t, before, p)
	assert.Equal(t, 2, out.Items[model.SlotWeapon].Idx)
	assert.NotContains(t, out.Items, model.SlotGloves)

	out.Items[model.SlotWeapon].Level = 9
	assert.Equal(t, 1, b.Items[model.SlotWeapon].Level)
}
