package techtree

import (
	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/model"
)

// Project returns the rank assignment the resolver reads under a mode.
// The input is never modified.
func Project(libs *data.Libraries, ranks model.TechTree, mode Mode) model.TechTree {
	switch mode {
	case ModeEmpty:
		return model.TechTree{}
	case ModeMax:
		out := make(model.TechTree, len(model.Trees))
		for _, tree := range model.Trees {
			layout, ok := libs.TechTree(tree)
			if !ok {
				continue
			}
			treeRanks := make(map[int]int, len(layout.Nodes))
			for _, node := range layout.Nodes {
				treeRanks[node.ID] = ProjectedMaxLevel(libs, node.Type)
			}
			out[tree] = treeRanks
		}
		return out
	default:
		if ranks == nil {
			return model.TechTree{}
		}
		return ranks.Clone()
	}
}

// ProjectedMaxLevel returns the rank a node type reaches in ModeMax.
func ProjectedMaxLevel(libs *data.Libraries, nodeType string) int {
	if effect, ok := libs.TechEffect(nodeType); ok && effect.MaxLevel > 0 {
		return effect.MaxLevel
	}
	return DefaultMaxLevel
}

// EditableMaxLevel returns the highest rank a node type can be set to by hand.
func EditableMaxLevel(libs *data.Libraries, nodeType string) int {
	if effect, ok := libs.TechEffect(nodeType); ok && effect.MaxLevel > 0 {
		return effect.MaxLevel
	}
	return EditorMaxLevel
}
