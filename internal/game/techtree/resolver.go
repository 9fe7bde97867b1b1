package techtree

import (
	"slices"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/model"
)

// StatBonus is the contribution of one valid node.
type StatBonus struct {
	Tree       model.TreeName
	NodeID     int
	NodeType   string
	StatType   string
	StatNature string
	Value      float64
}

// Resolution is the outcome of resolving all three trees.
type Resolution struct {
	// Totals sums node contributions per node type.
	Totals map[string]float64
	// Bonuses lists every contributing node in tree order, then by node id.
	Bonuses []StatBonus
}

// Total returns the summed bonus of a node type, 0 when absent.
func (r Resolution) Total(nodeType string) float64 {
	return r.Totals[nodeType]
}

// NodeValue returns the contribution of a node type at a rank.
// Only the first stat entry of the effect is used.
func NodeValue(effect data.TechEffect, rank int) float64 {
	if len(effect.Stats) == 0 || rank <= 0 {
		return 0
	}
	s := effect.Stats[0]
	return s.Value + float64(max(0, rank-1))*s.ValueIncrease
}

// Resolve sums the bonuses of every valid node across Forge, Power and
// SkillsPetTech under the given mode. A node is valid when every requirement in
// its chain has a positive rank. Invalid nodes contribute nothing.
func Resolve(libs *data.Libraries, ranks model.TechTree, mode Mode) Resolution {
	effective := Project(libs, ranks, mode)
	res := Resolution{Totals: make(map[string]float64)}

	for _, tree := range model.Trees {
		layout, ok := libs.TechTree(tree)
		if !ok {
			continue
		}
		treeRanks := effective[tree]
		v := newValidator(layout, treeRanks)

		for _, node := range sortedNodes(layout) {
			rank := treeRanks[node.ID]
			if rank <= 0 || !v.valid(node.ID) {
				continue
			}
			effect, ok := libs.TechEffect(node.Type)
			if !ok || len(effect.Stats) == 0 {
				continue
			}
			value := NodeValue(effect, rank)
			primary := effect.Stats[0].StatNode.UniqueStat

			res.Totals[node.Type] += value
			res.Bonuses = append(res.Bonuses, StatBonus{
				Tree:       tree,
				NodeID:     node.ID,
				NodeType:   node.Type,
				StatType:   primary.StatType,
				StatNature: primary.StatNature,
				Value:      value,
			})
		}
	}
	return res
}

// ValidNodes returns the ids of the nodes in a tree that have a positive rank and a
// satisfied requirement chain, ascending.
func ValidNodes(layout data.TechTreeLayout, ranks map[int]int) []int {
	v := newValidator(layout, ranks)
	var ids []int
	for _, node := range sortedNodes(layout) {
		if ranks[node.ID] > 0 && v.valid(node.ID) {
			ids = append(ids, node.ID)
		}
	}
	return ids
}

// validator checks requirement chains for one tree within one resolution pass.
type validator struct {
	nodes    map[int]data.TechNode
	ranks    map[int]int
	memo     map[int]bool
	visiting map[int]bool
}

func newValidator(layout data.TechTreeLayout, ranks map[int]int) *validator {
	nodes := make(map[int]data.TechNode, len(layout.Nodes))
	for _, n := range layout.Nodes {
		nodes[n.ID] = n
	}
	return &validator{
		nodes:    nodes,
		ranks:    ranks,
		memo:     make(map[int]bool),
		visiting: make(map[int]bool),
	}
}

func (v *validator) valid(id int) bool {
	if ok, done := v.memo[id]; done {
		return ok
	}
	// Reached again on the current path: cycle.
	if v.visiting[id] {
		return false
	}
	node, ok := v.nodes[id]
	if !ok {
		v.memo[id] = false
		return false
	}

	v.visiting[id] = true
	result := true
	for _, req := range node.Requirements {
		if v.ranks[req] <= 0 || !v.valid(req) {
			result = false
			break
		}
	}
	delete(v.visiting, id)

	v.memo[id] = result
	return result
}

func sortedNodes(layout data.TechTreeLayout) []data.TechNode {
	nodes := slices.Clone(layout.Nodes)
	slices.SortStableFunc(nodes, func(a, b data.TechNode) int { return a.ID - b.ID })
	return nodes
}
