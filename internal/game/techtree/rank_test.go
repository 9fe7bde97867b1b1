package techtree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/forgeplanner/internal/data/datatest"
	"github.com/udisondev/forgeplanner/internal/model"
)

func TestSetRank(t *testing.T) {
	libs := datatest.NewLibraries()

	tests := []struct {
		name   string
		tree   model.TreeName
		ranks  map[int]int
		node   int
		delta  int
		want   map[int]int
		wantOK bool
	}{
		{
			name:   "increase root",
			tree:   model.TreeForge,
			ranks:  map[int]int{},
			node:   1,
			delta:  1,
			want:   map[int]int{1: 1},
			wantOK: true,
		},
		{
			name:   "clamped to max level",
			tree:   model.TreeForge,
			ranks:  map[int]int{1: 4},
			node:   1,
			delta:  100,
			want:   map[int]int{1: 10},
			wantOK: true,
		},
		{
			name:   "missing requirement rejects increase",
			tree:   model.TreeForge,
			ranks:  map[int]int{1: 0, 3: 1},
			node:   2,
			delta:  1,
			want:   map[int]int{1: 0, 3: 1},
			wantOK: false,
		},
		{
			name:   "no max level edits up to one",
			tree:   model.TreePower,
			ranks:  map[int]int{10: 1, 11: 1},
			node:   12,
			delta:  5,
			want:   map[int]int{10: 1, 11: 1, 12: 1},
			wantOK: true,
		},
		{
			name:   "stored rank above cap is pulled down",
			tree:   model.TreePower,
			ranks:  map[int]int{10: 1, 11: 1, 12: 4},
			node:   12,
			delta:  1,
			want:   map[int]int{10: 1, 11: 1, 12: 1},
			wantOK: true,
		},
		{
			name:   "drop to zero prunes dependents",
			tree:   model.TreeForge,
			ranks:  map[int]int{1: 3, 2: 1, 3: 2, 4: 1},
			node:   1,
			delta:  -3,
			want:   map[int]int{1: 0, 2: 0, 3: 0, 4: 0},
			wantOK: true,
		},
		{
			name:   "drop branch keeps siblings",
			tree:   model.TreeForge,
			ranks:  map[int]int{1: 3, 2: 1, 3: 2, 4: 1},
			node:   2,
			delta:  -1,
			want:   map[int]int{1: 3, 2: 0, 3: 2, 4: 0},
			wantOK: true,
		},
		{
			name:   "below zero is a no-op",
			tree:   model.TreeForge,
			ranks:  map[int]int{},
			node:   1,
			delta:  -1,
			want:   map[int]int{},
			wantOK: false,
		},
		{
			name:   "unknown node",
			tree:   model.TreeForge,
			ranks:  map[int]int{1: 1},
			node:   42,
			delta:  1,
			want:   map[int]int{1: 1},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.TechTree{tt.tree: tt.ranks}
			before := in.Clone()

			got, ok := SetRank(libs, in, tt.tree, tt.node, tt.delta)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got[tt.tree])
			assert.Equal(t, before, in, "input ranks must not change")
		})
	}
}

func TestSetRank_DropInvalidatesEffectiveContribution(t *testing.T) {
	libs := datatest.NewLibraries()
	ranks := forgeRanks(map[int]int{1: 1, 2: 1, 3: 1, 4: 2})
	assert.NotZero(t, Resolve(libs, ranks, ModeActual).Total("TechNodeUpgradeCost"))

	next, ok := SetRank(libs, ranks, model.TreeForge, 3, -1)
	assert.True(t, ok)

	res := Resolve(libs, next, ModeActual)
	assert.Zero(t, res.Total("TechNodeUpgradeCost"))
	assert.Zero(t, res.Total("ForgeTimerSpeed"))
	assert.NotZero(t, res.Total("FreeForgeChance"))
}

func TestSetRank_NilRanks(t *testing.T) {
	got, ok := SetRank(datatest.NewLibraries(), nil, model.TreeForge, 1, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, got.Rank(model.TreeForge, 1))
}
