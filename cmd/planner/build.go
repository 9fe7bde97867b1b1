package main

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"

	"github.com/udisondev/forgeplanner/internal/game/compare"
	"github.com/udisondev/forgeplanner/internal/game/setbonus"
	"github.com/udisondev/forgeplanner/internal/model"
)

func newFlagSet(s *session, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.out)
	return fs
}

func newTable(s *session) *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
}

func printJSON(s *session, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(raw))
	return err
}

func runStats(_ context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "stats")
	mode := fs.String("mode", "", "tree mode override")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := s.applyMode(*mode); err != nil {
		return err
	}

	view, err := s.planner.Recompute()
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(s, view)
	}

	tw := newTable(s)
	fmt.Fprintf(tw, "version\t%s\n", s.planner.Libraries().Version)
	fmt.Fprintf(tw, "mode\t%s\n", s.planner.Mode())
	for _, f := range view.Stats.NumericFields() {
		fmt.Fprintf(tw, "%s\t%.4f\t%s\n", f.Name, f.Value, sources(view.Stats.StatCounts, f.Name))
	}
	fmt.Fprintf(tw, "weapon\tranged=%t projectile=%t\n", view.Stats.IsRangedWeapon, view.Stats.HasProjectile)
	for _, f := range view.Metrics.Fields() {
		fmt.Fprintf(tw, "%s\t%.4f\n", f.Name, f.Value)
	}
	return tw.Flush()
}

// sources renders the contributor count of a field whose stat type shares its name.
func sources(counts map[string]int, field string) string {
	for statType, n := range counts {
		if strings.EqualFold(statType, field) {
			return fmt.Sprintf("(%d sources)", n)
		}
	}
	return ""
}

func runCompare(ctx context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "compare")
	slotName := fs.String("slot", "", "slot to change: "+strings.Join(slotNames(), ", "))
	age := fs.Int("age", 0, "item age (0 keeps the current value)")
	idx := fs.Int("idx", 0, "item idx (0 keeps the current value)")
	level := fs.Int("level", 0, "item level (0 keeps the current value)")
	empty := fs.Bool("empty", false, "compare against an empty slot")
	mountRarity := fs.String("mount-rarity", "", "test mount rarity")
	mountLevel := fs.Int("mount-level", 0, "test mount level")
	all := fs.Bool("all", false, "show unchanged fields too")
	apply := fs.Bool("apply", false, "apply the test build and save the profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *slotName == "" && *mountRarity == "" {
		return fmt.Errorf("compare needs -slot or -mount-rarity")
	}

	var slot model.Slot
	if *slotName != "" {
		var err error
		if slot, err = parseSlot(*slotName); err != nil {
			return err
		}
	}

	if _, err := s.planner.EnterComparison(); err != nil {
		return err
	}
	err := s.planner.Compare(func(c *compare.Comparator) error {
		if slot != "" {
			if *empty {
				if err := c.SetTestItem(slot, nil); err != nil {
					return err
				}
			} else {
				test, err := c.Test()
				if err != nil {
					return err
				}
				item := editedItem(test.Items[slot], *age, *idx, *level)
				if err := c.SetTestItem(slot, item); err != nil {
					return err
				}
			}
		}
		if *mountRarity != "" {
			return c.SetTestMount(&model.MountConfig{Rarity: *mountRarity, Level: max(1, *mountLevel)})
		}
		return nil
	})
	if err != nil {
		_ = s.planner.DiscardComparison()
		return err
	}

	view, err := s.planner.Recompute()
	if err != nil {
		_ = s.planner.DiscardComparison()
		return err
	}

	tw := newTable(s)
	fmt.Fprintln(tw, "field\toriginal\ttest\tdelta\t%")
	for _, d := range view.Comparison.Deltas {
		if d.Delta == 0 && !*all {
			continue
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%+.4f\t%+.2f\n", d.Field, d.Original, d.Test, d.Delta, d.Percent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !*apply {
		return s.planner.DiscardComparison()
	}
	if err := s.planner.ApplyTest(); err != nil {
		return err
	}
	return s.save(ctx)
}

// editedItem copies base, or a fresh level-1 item, and overrides the non-zero fields.
func editedItem(base *model.EquippedItem, age, idx, level int) *model.EquippedItem {
	item := base.Clone()
	if item == nil {
		item = &model.EquippedItem{Age: 1, Idx: 1, Level: 1}
	}
	if age > 0 {
		item.Age = age
	}
	if idx > 0 {
		item.Idx = idx
	}
	if level > 0 {
		item.Level = level
	}
	return item
}

func slotNames() []string {
	names := make([]string, 0, len(model.Slots))
	for _, slot := range model.Slots {
		names = append(names, string(slot))
	}
	return names
}

func parseSlot(name string) (model.Slot, error) {
	for _, slot := range model.Slots {
		if strings.EqualFold(string(slot), name) {
			return slot, nil
		}
	}
	return "", unknown("slot", name, slotNames())
}

func runSets(_ context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "sets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := s.planner.Profile()
	if err != nil {
		return err
	}

	res := setbonus.Resolve(p.Items, s.planner.Libraries())
	if len(res.ActiveSets) == 0 {
		fmt.Fprintln(s.out, "no active sets")
		return nil
	}

	tw := newTable(s)
	fmt.Fprintln(tw, "set\tpieces\tstat\tvalue")
	for _, set := range res.ActiveSets {
		for _, stat := range slices.Sorted(maps.Keys(set.Bonuses)) {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%.4f\n", set.ID, set.EquippedPieces, stat, set.Bonuses[stat])
		}
	}
	return tw.Flush()
}
