package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/forgeplanner/internal/data/datatest"
	"github.com/udisondev/forgeplanner/internal/game/compare"
	"github.com/udisondev/forgeplanner/internal/game/stats"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

func soloProfile() model.Profile {
	p := model.NewProfile("solo")
	p.Items[model.SlotWeapon] = &model.EquippedItem{Age: 1, Idx: 1, Level: 1}
	return p
}

func TestNew_NilLibraries(t *testing.T) {
	pl := New(soloProfile(), nil)
	defer pl.Close()

	require.NotNil(t, pl.Libraries())
	assert.Equal(t, techtree.ModeActual, pl.Mode())

	view, err := pl.Recompute()
	require.NoError(t, err)
	assert.Nil(t, view.Comparison)
}

func TestNew_CopiesProfile(t *testing.T) {
	p := soloProfile()
	pl := New(p, datatest.NewLibraries())
	defer pl.Close()

	p.Items[model.SlotWeapon].Level = 40

	got, err := pl.Profile()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[model.SlotWeapon].Level)
}

func TestRecompute(t *testing.T) {
	libs := datatest.NewLibraries()
	p := soloProfile()
	pl := New(p, libs)
	defer pl.Close()

	view, err := pl.Recompute()
	require.NoError(t, err)

	assert.Equal(t, stats.Compute(p, libs, techtree.ModeActual), view.Stats)
	assert.Equal(t, 150.0, view.Stats.TotalDamage)
	assert.InDelta(t, 153.75, view.Metrics.WeaponDps, 1e-9)
}

func TestRecompute_Memo(t *testing.T) {
	libs := datatest.NewLibraries()
	pl := New(soloProfile(), libs)
	defer pl.Close()

	first, err := pl.Recompute()
	require.NoError(t, err)
	first.Stats.StatCounts["Damage"] = 99

	second, err := pl.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Stats.StatCounts["Damage"])
	assert.Equal(t, MemoStats{Hits: 1, Misses: 1}, pl.MemoStats())

	changed, err := pl.SetTechRank(model.TreePower, 10, 1)
	require.NoError(t, err)
	require.True(t, changed)

	third, err := pl.Recompute()
	require.NoError(t, err)
	assert.Greater(t, third.Stats.TotalDamage, second.Stats.TotalDamage)
	assert.Equal(t, MemoStats{Hits: 1, Misses: 2}, pl.MemoStats())

	// Same version string, different load.
	reloaded := datatest.NewLibraries()
	require.NoError(t, pl.SetLibraries(reloaded))
	_, err = pl.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 3, pl.MemoStats().Misses)
}

func TestRecompute_Mode(t *testing.T) {
	pl := New(soloProfile(), datatest.NewLibraries())
	defer pl.Close()

	actual, err := pl.Recompute()
	require.NoError(t, err)

	require.NoError(t, pl.SetMode(techtree.ModeMax))
	maxed, err := pl.Recompute()
	require.NoError(t, err)

	assert.Greater(t, maxed.Stats.TotalDamage, actual.Stats.TotalDamage)
	assert.Equal(t, 2, pl.MemoStats().Misses)

	stored, err := pl.Profile()
	require.NoError(t, err)
	assert.Empty(t, stored.TechTree[model.TreePower])
}

func TestSetTechRank(t *testing.T) {
	pl := New(soloProfile(), datatest.NewLibraries())
	defer pl.Close()

	changed, err := pl.SetTechRank(model.TreePower, 12, 1)
	require.NoError(t, err)
	assert.False(t, changed, "requirements are unranked")

	for _, id := range []int{10, 11, 12} {
		changed, err = pl.SetTechRank(model.TreePower, id, 1)
		require.NoError(t, err)
		assert.True(t, changed)
	}

	changed, err = pl.SetTechRank(model.TreePower, 10, -1)
	require.NoError(t, err)
	assert.True(t, changed)

	p, err := pl.Profile()
	require.NoError(t, err)
	assert.Equal(t, map[int]int{10: 0, 11: 1, 12: 0}, p.TechTree[model.TreePower])
}

func TestComparisonFlow(t *testing.T) {
	pl := New(soloProfile(), datatest.NewLibraries())
	defer pl.Close()

	_, err := pl.EnterComparison()
	require.NoError(t, err)

	err = pl.Compare(func(c *compare.Comparator) error {
		return c.SetTestItem(model.SlotWeapon, &model.EquippedItem{Age: 1, Idx: 2, Level: 1})
	})
	require.NoError(t, err)

	view, err := pl.Recompute()
	require.NoError(t, err)
	require.NotNil(t, view.Comparison)
	dmg, ok := view.Comparison.Find("totalDamage")
	require.True(t, ok)
	assert.Equal(t, 30.0, dmg.Delta)
	assert.Equal(t, 150.0, view.Stats.TotalDamage)

	require.NoError(t, pl.ApplyTest())

	view, err = pl.Recompute()
	require.NoError(t, err)
	assert.Nil(t, view.Comparison)
	assert.Equal(t, 180.0, view.Stats.TotalDamage)

	assert.ErrorIs(t, pl.KeepOriginal(), compare.ErrNotComparing)
}

func TestComparison_DiscardKeepsProfile(t *testing.T) {
	pl := New(soloProfile(), datatest.NewLibraries())
	defer pl.Close()
	before, err := pl.Profile()
	require.NoError(t, err)

	_, err = pl.EnterComparison()
	require.NoError(t, err)
	_, err = pl.EnterComparison()
	assert.ErrorIs(t, err, compare.ErrAlreadyComparing)

	require.NoError(t, pl.Compare(func(c *compare.Comparator) error {
		return c.SetOriginalItem(model.SlotWeapon, nil)
	}))
	require.NoError(t, pl.DiscardComparison())

	after, err := pl.Profile()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate(t *testing.T) {
	pl := New(soloProfile(), datatest.NewLibraries())
	defer pl.Close()

	boom := errors.New("boom")
	err := pl.Update(func(p *model.Profile) error {
		p.Misc.ForgeLevel = 7
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := pl.Profile()
	require.NoError(t, err)
	assert.Zero(t, p.Misc.ForgeLevel)

	require.NoError(t, pl.Update(func(p *model.Profile) error {
		p.Misc.ForgeLevel = 2
		return nil
	}))
	p, err = pl.Profile()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Misc.ForgeLevel)
}

func TestEconomyHelpers(t *testing.T) {
	p := soloProfile()
	p.TechTree[model.TreeForge] = map[int]int{1: 10}
	p.TechTree[model.TreeSkillsPetTech] = map[int]int{20: 2}
	p.Misc.ForgeLevel = 2
	pl := New(p, datatest.NewLibraries())
	defer pl.Close()

	forge, err := pl.Forge(0)
	require.NoError(t, err)
	assert.Equal(t, 2, forge.Level)
	assert.Equal(t, 1500.0, forge.Upgrade.Cost)

	forge, err = pl.Forge(1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, forge.Upgrade.Cost)

	rows, err := pl.ForgeWiki()
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	skill, err := pl.Skill(0)
	require.NoError(t, err)
	assert.Equal(t, 1, skill.Level)
	assert.Equal(t, int64(180), skill.CostPerSummon)

	mount, err := pl.Mount(3)
	require.NoError(t, err)
	assert.Equal(t, 3, mount.Level)

	costs, err := pl.UpgradeCosts()
	require.NoError(t, err)
	require.Len(t, costs, 3)
	assert.Equal(t, model.TreeForge, costs[0].Tree)

	res, err := pl.Resolution()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Total("ForgeUpgradeCost"), 1e-12)
}

func TestUpgradeCosts_FollowMode(t *testing.T) {
	p := soloProfile()
	p.TechTree[model.TreeForge] = map[int]int{1: 10}
	pl := New(p, datatest.NewLibraries())
	defer pl.Close()

	tests := []struct {
		mode  techtree.Mode
		check func(t *testing.T, tc techtree.TreeCost)
	}{
		{techtree.ModeMax, func(t *testing.T, tc techtree.TreeCost) {
			assert.Positive(t, tc.TotalCost)
			assert.Zero(t, tc.RemainingCost)
			assert.Zero(t, tc.RemainingDuration)
		}},
		{techtree.ModeEmpty, func(t *testing.T, tc techtree.TreeCost) {
			assert.Positive(t, tc.TotalCost)
			assert.Equal(t, tc.TotalCost, tc.RemainingCost)
			assert.Equal(t, tc.TotalDuration, tc.RemainingDuration)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			require.NoError(t, pl.SetMode(tt.mode))
			costs, err := pl.UpgradeCosts()
			require.NoError(t, err)
			require.Len(t, costs, 3)
			for _, tc := range costs {
				t.Run(string(tc.Tree), func(t *testing.T) {
					tt.check(t, tc)
				})
			}
		})
	}

	require.NoError(t, pl.SetMode(techtree.ModeActual))
	costs, err := pl.UpgradeCosts()
	require.NoError(t, err)
	forge := costs[0]
	require.Equal(t, model.TreeForge, forge.Tree)
	assert.Less(t, forge.RemainingCost, forge.TotalCost)
	assert.Equal(t, 10, forge.Nodes[0].Rank)
	assert.Zero(t, forge.Nodes[0].RemainingCost)
}

func TestClose(t *testing.T) {
	pl := New(soloProfile(), datatest.NewLibraries())
	_, err := pl.EnterComparison()
	require.NoError(t, err)

	require.NoError(t, pl.Close())
	assert.ErrorIs(t, pl.Close(), ErrClosed)

	_, err = pl.Recompute()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = pl.Profile()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = pl.SetTechRank(model.TreePower, 10, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, pl.SetMode(techtree.ModeEmpty), ErrClosed)
	assert.ErrorIs(t, pl.SetLibraries(nil), ErrClosed)
	_, err = pl.Forge(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, pl.ApplyTest(), ErrClosed)
}
