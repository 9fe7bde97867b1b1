package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/udisondev/forgeplanner/internal/model"
)

func runTree(ctx context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "tree")
	mode := fs.String("mode", "", "tree mode override")
	rank := fs.String("rank", "", "edit a rank: <tree>:<node>:<delta>, e.g. Power:10:+1")
	costs := fs.Bool("costs", false, "show research costs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := s.applyMode(*mode); err != nil {
		return err
	}

	if *rank != "" {
		tree, node, delta, err := parseRankEdit(*rank)
		if err != nil {
			return err
		}
		changed, err := s.planner.SetTechRank(tree, node, delta)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(s.out, "rank of %s node %d unchanged (max level or missing requirement)\n", tree, node)
		} else if err := s.save(ctx); err != nil {
			return err
		}
	}

	res, err := s.planner.Resolution()
	if err != nil {
		return err
	}

	tw := newTable(s)
	fmt.Fprintf(tw, "mode\t%s\n", s.planner.Mode())
	fmt.Fprintln(tw, "tree\tnode\ttype\tvalue")
	for _, b := range res.Bonuses {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.4f\n", b.Tree, b.NodeID, b.NodeType, b.Value)
	}
	fmt.Fprintln(tw, "\ttotal\t\t")
	for _, nodeType := range slices.Sorted(maps.Keys(res.Totals)) {
		fmt.Fprintf(tw, "\t\t%s\t%.4f\n", nodeType, res.Totals[nodeType])
	}

	if *costs {
		bills, err := s.planner.UpgradeCosts()
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "tree\tcost\tremaining\ttime\tremaining time")
		for _, b := range bills {
			fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0fs\t%.0fs\n",
				b.Tree, b.TotalCost, b.RemainingCost, b.TotalDuration, b.RemainingDuration)
		}
	}
	return tw.Flush()
}

// parseRankEdit parses "<tree>:<node>:<delta>".
func parseRankEdit(s string) (model.TreeName, int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("rank edit %q: want <tree>:<node>:<delta>", s)
	}
	tree, err := parseTree(parts[0])
	if err != nil {
		return "", 0, 0, err
	}
	node, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("rank edit %q: node: %w", s, err)
	}
	delta, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("rank edit %q: delta: %w", s, err)
	}
	return tree, node, delta, nil
}

func parseTree(name string) (model.TreeName, error) {
	names := make([]string, 0, len(model.Trees))
	for _, tree := range model.Trees {
		if strings.EqualFold(string(tree), name) {
			return tree, nil
		}
		names = append(names, string(tree))
	}
	return "", unknown("tree", name, names)
}
