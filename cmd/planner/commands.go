package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

type command struct {
	name string
	desc string
	run  func(ctx context.Context, s *session, args []string) error
	// standalone commands run without loading data or a profile.
	standalone bool
}

var commands []command

func registerCommand(name, desc string, fn func(ctx context.Context, s *session, args []string) error) {
	commands = append(commands, command{name: name, desc: desc, run: fn})
}

func init() {
	registerCommand("stats", "Computed stats and combat metrics of the profile", runStats)
	registerCommand("compare", "Compare the profile against a changed item or mount", runCompare)
	registerCommand("sets", "Active set bonuses", runSets)
	registerCommand("tree", "Tech tree bonuses, rank edits and research costs", runTree)
	registerCommand("forge", "Forge upgrade bill and hammer spending", runForge)
	registerCommand("wiki", "Forge reference table over every level", runWiki)
	registerCommand("mount", "Mount summon spending", runMount)
	registerCommand("skills", "Skill summon spending", runSkills)
	registerCommand("versions", "Available game data versions", runVersions)
	registerCommand("profiles", "Stored profiles (database only)", runProfiles)
	commands = append(commands, command{
		name:       "commands",
		desc:       "List commands",
		standalone: true,
		run: func(_ context.Context, s *session, _ []string) error {
			printUsage(s.out)
			return nil
		},
	})
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
	}
	return names
}

func lookupCommand(name string) (command, error) {
	for _, c := range commands {
		if c.name == name {
			return c, nil
		}
	}
	return command{}, unknown("command", name, commandNames())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: planner [-config path] [-version v] [-profile name] [-mode m] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.desc)
	}
}

// suggest returns the candidates within edit distance of input, closest first.
func suggest(input string, candidates []string) []string {
	in := strings.ToLower(input)
	if in == "" {
		return nil
	}
	type match struct {
		name string
		dist int
	}
	var matches []match
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		dist := levenshtein.ComputeDistance(in, c)
		if strings.HasPrefix(c, in) {
			dist = 0
		}
		if dist > levenshteinLimit(len(c)) {
			continue
		}
		matches = append(matches, match{name: cand, dist: dist})
	}
	slices.SortStableFunc(matches, func(a, b match) int {
		if a.dist != b.dist {
			return cmp.Compare(a.dist, b.dist)
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// unknown builds an "unknown <kind>" error with spelling suggestions.
func unknown(kind, input string, candidates []string) error {
	if s := suggest(input, candidates); len(s) > 0 {
		return fmt.Errorf("unknown %s %q, did you mean %s?", kind, input, strings.Join(s, " or "))
	}
	return fmt.Errorf("unknown %s %q (known: %s)", kind, input, strings.Join(candidates, ", "))
}
