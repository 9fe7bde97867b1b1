// Package setbonus resolves set bonuses from equipped item skins.
package setbonus

import (
	"slices"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/model"
)

// ActiveSet is a set with at least one satisfied tier.
type ActiveSet struct {
	ID             string
	EquippedPieces int
	// Bonuses sums the active tiers of this set per stat type.
	Bonuses map[string]float64
}

// Bonus is one stat granted by an active tier, nature preserved.
type Bonus struct {
	SetID      string
	Pieces     int
	StatType   string
	StatNature string
	Value      float64
}

// Result holds the active sets and their flattened bonuses.
type Result struct {
	ActiveSets   []ActiveSet
	TotalBonuses map[string]float64
	Stats        []Bonus
}

// CountPieces counts equipped pieces per set id. The skin of each slot is looked
// up by the slot's item type and the skin idx.
func CountPieces(items model.Items, libs *data.Libraries) map[string]int {
	counts := make(map[string]int)
	for _, slot := range model.Slots {
		item := items[slot]
		if item == nil || item.Skin == nil {
			continue
		}
		skin, ok := libs.Skin(slot.ItemType(), item.Skin.Idx)
		if !ok || skin.SetID == "" {
			continue
		}
		counts[skin.SetID]++
	}
	return counts
}

// Resolve activates every tier whose RequiredPieces is met. All satisfied tiers
// accumulate. Sets without a satisfied tier, or missing from the library, are
// left out. Active sets are ordered by id.
func Resolve(items model.Items, libs *data.Libraries) Result {
	res := Result{TotalBonuses: make(map[string]float64)}

	counts := CountPieces(items, libs)
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		def, ok := libs.Set(id)
		if !ok {
			continue
		}
		count := counts[id]

		active := ActiveSet{ID: id, EquippedPieces: count, Bonuses: make(map[string]float64)}
		activated := false
		for _, tier := range def.BonusTiers {
			if count < tier.RequiredPieces {
				continue
			}
			activated = true
			for _, stat := range tier.BonusStats.Stats {
				active.Bonuses[stat.Type()] += stat.Value
				res.TotalBonuses[stat.Type()] += stat.Value
				res.Stats = append(res.Stats, Bonus{
					SetID:      id,
					Pieces:     tier.RequiredPieces,
					StatType:   stat.Type(),
					StatNature: stat.Nature(),
					Value:      stat.Value,
				})
			}
		}
		if activated {
			res.ActiveSets = append(res.ActiveSets, active)
		}
	}
	return res
}
