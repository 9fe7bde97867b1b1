package techtree

import (
	"math"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/model"
)

// Node types that modify research.
const (
	TypeTechNodeUpgradeCost = "TechNodeUpgradeCost"
	TypeTechResearchTimer   = "TechResearchTimer"
)

// ResearchModifiers are the bonuses applied to research cost and duration.
type ResearchModifiers struct {
	CostReduction float64
	TimeSpeedup   float64
}

// ModifiersFrom extracts research modifiers from a resolution.
func ModifiersFrom(res Resolution) ResearchModifiers {
	return ResearchModifiers{
		CostReduction: ClampReduction(res.Total(TypeTechNodeUpgradeCost)),
		TimeSpeedup:   max(0, res.Total(TypeTechResearchTimer)),
	}
}

// NodeCost is the research bill of one node.
type NodeCost struct {
	NodeID   int
	NodeType string
	Tier     int
	Rank     int
	MaxLevel int

	TotalCost         float64
	RemainingCost     float64
	TotalDuration     float64
	RemainingDuration float64
}

// TreeCost sums the research bill of one tree.
type TreeCost struct {
	Tree  model.TreeName
	Nodes []NodeCost

	TotalCost         float64
	RemainingCost     float64
	TotalDuration     float64
	RemainingDuration float64
}

// LevelCost returns the cost and duration of researching one level after modifiers.
func LevelCost(level data.TechUpgradeLevel, mods ResearchModifiers) (cost, duration float64) {
	cost = math.Floor(level.Cost * (1 - ClampReduction(mods.CostReduction)))
	duration = level.Duration / (1 + max(0, mods.TimeSpeedup))
	return cost, duration
}

// NodeUpgradeCost totals research cost over levels 0..MaxLevel-1 of a node.
// Levels at or above the current rank count as remaining.
func NodeUpgradeCost(libs *data.Libraries, node data.TechNode, rank int, mods ResearchModifiers) NodeCost {
	nc := NodeCost{
		NodeID:   node.ID,
		NodeType: node.Type,
		Tier:     node.Tier,
		Rank:     rank,
		MaxLevel: EditableMaxLevel(libs, node.Type),
	}
	tier, ok := libs.TechUpgrade(node.Tier)
	if !ok {
		return nc
	}
	for l := 0; l < nc.MaxLevel; l++ {
		level, ok := tier.Level(l)
		if !ok {
			continue
		}
		cost, duration := LevelCost(level, mods)
		nc.TotalCost += cost
		nc.TotalDuration += duration
		if l >= rank {
			nc.RemainingCost += cost
			nc.RemainingDuration += duration
		}
	}
	return nc
}

// UpgradeCosts returns the research bill of every tree, in tree order.
func UpgradeCosts(libs *data.Libraries, ranks model.TechTree, mods ResearchModifiers) []TreeCost {
	var out []TreeCost
	for _, tree := range model.Trees {
		layout, ok := libs.TechTree(tree)
		if !ok {
			continue
		}
		tc := TreeCost{Tree: tree}
		for _, node := range sortedNodes(layout) {
			nc := NodeUpgradeCost(libs, node, ranks.Rank(tree, node.ID), mods)
			tc.Nodes = append(tc.Nodes, nc)
			tc.TotalCost += nc.TotalCost
			tc.RemainingCost += nc.RemainingCost
			tc.TotalDuration += nc.TotalDuration
			tc.RemainingDuration += nc.RemainingDuration
		}
		out = append(out, tc)
	}
	return out
}
