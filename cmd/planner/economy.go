package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/economy"
	"github.com/udisondev/forgeplanner/internal/model"
)

func runForge(_ context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "forge")
	level := fs.Int("level", 0, "forge level (default: profile)")
	hammers := fs.Int64("hammers", 0, "hammers to spend")
	exp := fs.Float64("exp", 0, "forge exp to reach")
	maxItemLevel := fs.Int("max-item-level", 0, "highest item level, enables the coin estimate")
	priceBonus := fs.Float64("price-bonus", 0, "sell price bonus in percent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := s.planner.Forge(*level)
	if err != nil {
		return err
	}

	tw := newTable(s)
	fmt.Fprintf(tw, "forge level\t%d\n", f.Level)
	b := f.Bonuses
	fmt.Fprintf(tw, "bonuses\tcost -%.1f%%  free +%.1f%%  speed +%.1f%%\n",
		b.CostReduction*100, b.FreeChance*100, b.TimerSpeed*100)
	if u := f.Upgrade; u.IsMax {
		fmt.Fprintln(tw, "upgrade\tmax level")
	} else {
		fmt.Fprintf(tw, "upgrade cost\t%.0f (%d tiers, %.0f per tier)\n", u.Cost, u.Tiers, u.CostPerTier)
		fmt.Fprintf(tw, "upgrade time\t%.0fs\n", u.TotalTimeSeconds)
		fmt.Fprintf(tw, "hammers\t%d raw, %d with free forges, %d per tier\n", u.RawHammers, u.Hammers, u.HammersPerTier)
		fmt.Fprintf(tw, "gold per hammer\t%.2f\n", u.GoldPerHammer)
	}

	if *hammers > 0 {
		res := f.Calculate(*hammers)
		fmt.Fprintf(tw, "spend %d hammers\t%.2f exp, %.1f forges\n", *hammers, res.Output, res.EffectiveHammers)
		for _, share := range res.Breakdown {
			fmt.Fprintf(tw, "  %s\t%d (%.2f%%)\n", share.Rarity, share.Count, share.Percent)
		}
		if *maxItemLevel > 0 {
			coins := f.Coins(*hammers, *maxItemLevel, *priceBonus)
			fmt.Fprintf(tw, "coins\t%.0f - %.0f\n", coins.Min, coins.Max)
		}
	}
	if *exp > 0 {
		plan := f.Target(*exp)
		fmt.Fprintf(tw, "reach %.0f exp\t%d hammers\n", *exp, plan.Resource)
	}
	return tw.Flush()
}

func runWiki(_ context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "wiki")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rows, err := s.planner.ForgeWiki()
	if err != nil {
		return err
	}

	tw := newTable(s)
	fmt.Fprintln(tw, "level\tcost\ttiers\ttime\thammers\texp/hammer\tchances")
	for _, r := range rows {
		chances := ""
		for _, rarity := range sortedChanceKeys(r.Chances) {
			chances += fmt.Sprintf("%s %.2f%% ", rarity, r.Chances[rarity])
		}
		if r.IsMax {
			fmt.Fprintf(tw, "%d\tmax\t\t\t\t%.2f\t%s\n", r.Level, r.ItemExpPerHammer, chances)
			continue
		}
		fmt.Fprintf(tw, "%d\t%.0f\t%d\t%.0fs\t%d\t%.2f\t%s\n",
			r.Level, r.Cost, r.Tiers, r.TotalTimeSeconds, r.Hammers, r.ItemExpPerHammer, chances)
	}
	return tw.Flush()
}

func runMount(_ context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "mount")
	level := fs.Int("level", 0, "summon level (default: profile)")
	winders := fs.Int64("winders", 0, "winders to spend")
	points := fs.Float64("points", 0, "war points to reach")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := s.planner.Mount(*level)
	if err != nil {
		return err
	}

	tw := newTable(s)
	fmt.Fprintf(tw, "summon level\t%d\n", m.Level)
	fmt.Fprintf(tw, "cost per summon\t%.2f winders\n", m.CostPerSummon())
	fmt.Fprintf(tw, "extra chance\t%.1f%%\n", m.Bonuses.ExtraChance*100)
	fmt.Fprintf(tw, "points per summon\t%.3f\n", m.ExpectedPoints)
	if *winders > 0 {
		res := m.Calculate(*winders)
		fmt.Fprintf(tw, "spend %d winders\t%.1f mounts, %.1f points\n", *winders, res.TotalSummons, res.Output)
		printShares(tw, res.Breakdown)
	}
	if *points > 0 {
		plan := m.Target(*points)
		fmt.Fprintf(tw, "reach %.0f points\t%d winders (%d summons)\n", *points, plan.Resource, plan.Actions)
	}
	return tw.Flush()
}

func runSkills(ctx context.Context, s *session, args []string) error {
	p, err := s.planner.Profile()
	if err != nil {
		return err
	}

	fs := newFlagSet(s, "skills")
	level := fs.Int("level", 0, "summon level (default: profile)")
	tickets := fs.Int64("tickets", p.Misc.SkillCalculatorTickets, "tickets to spend")
	skills := fs.Float64("skills", 0, "skills to summon")
	remember := fs.Bool("save", false, "store level and tickets in the profile")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sk, err := s.planner.Skill(*level)
	if err != nil {
		return err
	}

	tw := newTable(s)
	fmt.Fprintf(tw, "summon level\t%d\n", sk.Level)
	fmt.Fprintf(tw, "cost per summon\t%d tickets (%.0f base)\n", sk.CostPerSummon, sk.BaseCost)
	fmt.Fprintf(tw, "skills per summon\t%.0f, extra +%.1f%%\n", sk.SummonCount, sk.Bonuses.ExtraChance*100)
	if *tickets > 0 {
		res := sk.Calculate(*tickets)
		fmt.Fprintf(tw, "spend %d tickets\t%d summons, %.1f skills, %.1f points\n",
			*tickets, res.Actions, res.Output, res.TotalPoints)
		printShares(tw, res.Breakdown)
	}
	if *skills > 0 {
		plan := sk.Target(*skills)
		fmt.Fprintf(tw, "summon %.0f skills\t%d tickets\n", *skills, plan.Resource)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !*remember {
		return nil
	}
	err = s.planner.Update(func(p *model.Profile) error {
		p.Misc.SkillCalculatorLevel = sk.Level
		p.Misc.SkillCalculatorTickets = max(0, *tickets)
		return nil
	})
	if err != nil {
		return err
	}
	return s.save(ctx)
}

func printShares(w io.Writer, shares []economy.RarityShare) {
	for _, sh := range shares {
		fmt.Fprintf(w, "  %s\t%.2f (%.2f%%), %.1f points\n", sh.Rarity, sh.Count, sh.Chance*100, sh.TotalPoints)
	}
}

// sortedChanceKeys orders rarities the way the game does, unknown names last.
func sortedChanceKeys(chances map[string]float64) []string {
	var out []string
	for _, r := range data.Rarities {
		if _, ok := chances[r]; ok {
			out = append(out, r)
		}
	}
	for _, r := range slices.Sorted(maps.Keys(chances)) {
		if !slices.Contains(data.Rarities, r) {
			out = append(out, r)
		}
	}
	return out
}
