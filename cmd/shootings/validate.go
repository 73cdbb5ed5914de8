package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/shooting-analytics/internal/adapter/csvsource"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
	"github.com/couchcryptid/shooting-analytics/internal/pipeline"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <csv>...",
		Short: "Report column coverage, malformed cells and the steps each CSV would run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p := pipeline.New(pipeline.Settings{}, nil, io.Discard, a.logger, a.metrics)
			for _, path := range args {
				if err := a.validate(p, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) validate(p *pipeline.Pipeline, path string) error {
	frame, err := csvsource.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "=== %s: %d rows, %d columns ===\n\n", path, frame.Len(), len(frame.Columns()))

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tPRESENT\tBLANK\tMALFORMED\tOUT OF RANGE")
	for _, q := range domain.Quality(frame) {
		if !q.Present {
			fmt.Fprintf(tw, "%s\tno\t-\t-\t-\n", q.Column)
			continue
		}
		fmt.Fprintf(tw, "%s\tyes\t%d\t%d\t%d\n", q.Column, q.Blank, q.Malformed, q.OutOfRange)
	}
	tw.Flush()

	withPoint := 0
	for _, inc := range frame.Rows {
		if inc.HasPoint {
			withPoint++
		}
	}
	fmt.Fprintf(a.out, "\nRows with coordinates: %d of %d\n\n", withPoint, frame.Len())

	fmt.Fprintln(a.out, "Trends steps:")
	for _, ps := range p.PlanFrame(frame) {
		if len(ps.Missing) == 0 {
			fmt.Fprintf(a.out, "  run   %s\n", ps.Name)
			continue
		}
		fmt.Fprintf(a.out, "  skip  %s (missing %s)\n", ps.Name, strings.Join(ps.Missing, ", "))
	}
	fmt.Fprintln(a.out)
	return nil
}
