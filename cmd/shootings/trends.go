package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/shooting-analytics/internal/adapter/chart"
	"github.com/couchcryptid/shooting-analytics/internal/adapter/csvsource"
	kafkaadapter "github.com/couchcryptid/shooting-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
	"github.com/couchcryptid/shooting-analytics/internal/pipeline"
)

func newTrendsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Compute statistics and trend charts for an incident CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stringFlag(cmd, "input", &a.cfg.TrendsInput)
			stringFlag(cmd, "output", &a.cfg.OutputDir)
			if cmd.Flags().Changed("exclude-year") {
				a.cfg.ExcludeYear, _ = cmd.Flags().GetInt("exclude-year")
			}
			return a.runTrends(cmd)
		},
	}
	cmd.Flags().StringP("input", "i", "", "incident CSV (default $TRENDS_INPUT)")
	cmd.Flags().StringP("output", "o", "", "directory for charts and tables (default $OUTPUT_DIR)")
	cmd.Flags().StringSlice("steps", nil, "run only these steps, comma separated (default all)")
	cmd.Flags().Int("exclude-year", 0, "drop rows from this year, 0 keeps all (default $EXCLUDE_YEAR or 2025)")
	return cmd
}

func (a *app) runTrends(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := a.cfg

	frame, err := csvsource.Load(cfg.TrendsInput)
	if err != nil {
		return err
	}
	a.metrics.RowsLoaded.Add(float64(frame.Len()))
	a.logger.Info("incidents loaded", "input", cfg.TrendsInput, "rows", frame.Len(), "columns", len(frame.Columns()))

	renderer, err := chart.NewRenderer(cfg.OutputDir)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Settings{
		OutputDir:     cfg.OutputDir,
		ExcludeYear:   cfg.ExcludeYear,
		Alpha:         cfg.SignificanceAlpha,
		HistogramBins: cfg.HistogramBins,
	}, renderer, a.out, a.logger, a.metrics)

	names, _ := cmd.Flags().GetStringSlice("steps")
	steps, err := pipeline.SelectSteps(names...)
	if err != nil {
		return err
	}
	p.WithSteps(steps...)

	if cfg.PublishReports() {
		writer := kafkaadapter.NewReportWriter(cfg, a.logger)
		defer func() {
			if err := writer.Close(); err != nil {
				a.logger.Error("kafka writer close error", "error", err)
			}
		}()
		p.WithPublisher(writer)
	}

	report, _, err := p.Run(ctx, cfg.TrendsInput, frame)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nRun %s: %d ok, %d skipped, %d failed\n", report.ID,
		report.Count(domain.StepOK), report.Count(domain.StepSkipped), report.Count(domain.StepFailed))
	for _, s := range report.Steps {
		for _, art := range s.Artifacts {
			fmt.Fprintf(a.out, "  %-22s %s\n", s.Name, art)
		}
	}
	if n := report.Count(domain.StepFailed); n > 0 {
		return fmt.Errorf("%d step(s) failed", n)
	}
	return nil
}
