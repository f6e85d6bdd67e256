package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fitforge/fitforge"
)

// printRun renders one solver run as a team/project table.
func printRun(w io.Writer, eng *fitforge.Engine, set fitforge.AllocationSet) error {
	fmt.Fprintf(w, "run %d (%s) score %.4g\n", set.Sequence, set.Algorithm, set.Score)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tPROJECT\tBENEFIT")
	assigned := make(map[int]int, len(set.Pairings))
	for _, p := range set.Pairings {
		assigned[p.Team] = p.Project
	}
	for team := 1; team <= eng.TeamCount(); team++ {
		project, ok := assigned[team]
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t-\n", eng.TeamName(team))
			continue
		}
		b, err := eng.BenefitValue(team, project)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4g\n", eng.TeamName(team), eng.ProjectName(project), b)
	}

	return tw.Flush()
}

// printState renders the current allocation and a history summary.
func printState(w io.Writer, eng *fitforge.Engine) error {
	fmt.Fprintf(w, "stage: %s\nteams: %d projects: %d\n", eng.Stage(), eng.TeamCount(), eng.ProjectCount())
	fmt.Fprintf(w, "scalars: capability %.4g preference %.4g\n", eng.CapabilityScalar(), eng.PreferenceScalar())
	fmt.Fprintf(w, "current score: %.4g\n", eng.Score())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tCAPACITY")
	for j, c := range eng.Capacities() {
		fmt.Fprintf(tw, "%s\t%d\n", eng.ProjectName(j+1), c)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, p := range eng.Allocations() {
		fmt.Fprintf(w, "allocated: %s -> %s\n", eng.TeamName(p.Team), eng.ProjectName(p.Project))
	}
	for _, p := range eng.Rejections() {
		fmt.Fprintf(w, "rejected:  %s -> %s\n", eng.TeamName(p.Team), eng.ProjectName(p.Project))
	}
	for _, set := range eng.AllocationHistory() {
		fmt.Fprintf(w, "run %d: %s score %.4g (%d pairings)\n", set.Sequence, set.Algorithm, set.Score, len(set.Pairings))
	}

	return nil
}
