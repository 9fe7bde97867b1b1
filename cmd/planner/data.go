package main

import (
	"context"
	"errors"
	"fmt"
)

func runVersions(_ context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "versions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	selected := s.store.Selected()
	for _, v := range s.manifest.Versions() {
		marker := " "
		if v == selected {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %s (%d libraries)\n", marker, v, len(s.manifest.Libraries(v)))
	}
	return nil
}

func runProfiles(ctx context.Context, s *session, args []string) error {
	fs := newFlagSet(s, "profiles")
	del := fs.String("delete", "", "delete a stored profile")
	history := fs.String("history", "", "list saved revisions of a profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if s.repo == nil {
		return errors.New("profiles needs database.enabled in the config")
	}

	switch {
	case *del != "":
		return s.repo.Delete(ctx, *del)
	case *history != "":
		revs, err := s.repo.Revisions(ctx, *history)
		if err != nil {
			return err
		}
		tw := newTable(s)
		fmt.Fprintln(tw, "revision\tsaved\tforge level\titems")
		for _, r := range revs {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", r.ID, r.SavedAt.Format("2006-01-02 15:04"), r.Profile.Misc.ForgeLevel, len(r.Profile.Items))
		}
		return tw.Flush()
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	tw := newTable(s)
	fmt.Fprintln(tw, "name\tversion\tupdated\tid")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Version, p.UpdatedAt.Format("2006-01-02 15:04"), p.ID)
	}
	return tw.Flush()
}
