package techtree

import (
	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/model"
)

// SetRank changes a node's rank by delta, clamped to [0, EditableMaxLevel].
//
// An increase is rejected when any direct requirement has rank 0. Dropping a
// node to 0 also zeroes every node that depends on it, transitively. The
// returned assignment is a fresh copy; ok is false when nothing changed.
//
// The clamp applies to the stored rank too: a rank above EditableMaxLevel
// (set by import or by ModeMax projection) is pulled down to the cap by any
// delta, positive included, and reported as changed.
func SetRank(libs *data.Libraries, ranks model.TechTree, tree model.TreeName, nodeID, delta int) (model.TechTree, bool) {
	out := ranks.Clone()
	if out == nil {
		out = model.TechTree{}
	}

	layout, ok := libs.TechTree(tree)
	if !ok {
		return out, false
	}
	node, ok := layout.Node(nodeID)
	if !ok {
		return out, false
	}

	current := ranks.Rank(tree, nodeID)
	next := min(max(current+delta, 0), EditableMaxLevel(libs, node.Type))
	if next == current {
		return out, false
	}

	if next > current {
		for _, req := range node.Requirements {
			if ranks.Rank(tree, req) <= 0 {
				return out, false
			}
		}
	}

	treeRanks := out[tree]
	if treeRanks == nil {
		treeRanks = make(map[int]int)
		out[tree] = treeRanks
	}
	treeRanks[nodeID] = next

	if next == 0 {
		pruneDependents(layout, treeRanks, nodeID, map[int]bool{nodeID: true})
	}
	return out, true
}

func pruneDependents(layout data.TechTreeLayout, ranks map[int]int, parentID int, seen map[int]bool) {
	for _, n := range layout.Nodes {
		if seen[n.ID] || ranks[n.ID] <= 0 || !requires(n, parentID) {
			continue
		}
		ranks[n.ID] = 0
		seen[n.ID] = true
		pruneDependents(layout, ranks, n.ID, seen)
	}
}

func requires(n data.TechNode, id int) bool {
	for _, req := range n.Requirements {
		if req == id {
			return true
		}
	}
	return false
}
