// Package pipeline runs the trends analysis as an ordered list of steps, each
// gated on the columns it needs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/shooting-analytics/internal/adapter/chart"
	"github.com/couchcryptid/shooting-analytics/internal/analysis"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
	"github.com/couchcryptid/shooting-analytics/internal/observability"
)

// ChartWriter saves charts and returns the written file path.
type ChartWriter interface {
	Histogram(file string, meta chart.Meta, bins []analysis.Bin) (string, error)
	Bar(file string, meta chart.Meta, labels []string, values []float64) (string, error)
	Line(file string, meta chart.Meta, labels []string, values []float64) (string, error)
	MultiLine(file string, meta chart.Meta, labels []string, series []chart.Series) (string, error)
}

// ReportPublisher ships a finished run report somewhere durable.
type ReportPublisher interface {
	Publish(ctx context.Context, run domain.RunReport) error
}

// Step is one self-describing unit of analysis.
type Step interface {
	Name() string
	// Requires lists the columns that must be present for the step to run.
	Requires() []string
	// Run performs the step and returns the paths of any files it wrote.
	Run(ctx context.Context, env *Env) ([]string, error)
}

// Settings are the tunables of a run.
type Settings struct {
	OutputDir     string
	ExcludeYear   int // 0 keeps every year
	Alpha         float64
	HistogramBins int
}

// Env is what a step can see: the working frame, its outputs, and the results
// collected so far.
type Env struct {
	Frame    *domain.Frame
	Charts   ChartWriter
	Out      io.Writer // console diagnostics
	Settings Settings
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Results  *Results
}

// Pipeline runs steps in order over one frame. A failing step is reported and
// never stops the steps after it.
type Pipeline struct {
	steps     []Step
	charts    ChartWriter
	publisher ReportPublisher
	out       io.Writer
	settings  Settings
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline running DefaultSteps.
func New(settings Settings, charts ChartWriter, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if settings.Alpha <= 0 {
		settings.Alpha = analysis.DefaultAlpha
	}
	if settings.HistogramBins <= 0 {
		settings.HistogramBins = 20
	}
	return &Pipeline{
		steps:    DefaultSteps(),
		charts:   charts,
		out:      out,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
	}
}

// WithSteps replaces the step list.
func (p *Pipeline) WithSteps(steps ...Step) *Pipeline {
	p.steps = steps
	return p
}

// WithPublisher sends every finished run report to pub.
func (p *Pipeline) WithPublisher(pub ReportPublisher) *Pipeline {
	p.publisher = pub
	return p
}

// Run executes every step over frame. It returns early only when ctx is
// cancelled; step failures are recorded in the report.
func (p *Pipeline) Run(ctx context.Context, input string, frame *domain.Frame) (domain.RunReport, *Results, error) {
	report := domain.RunReport{
		ID:        uuid.NewString(),
		Input:     input,
		Rows:      frame.Len(),
		StartedAt: domain.Now(),
	}
	env := &Env{
		Frame:    frame,
		Charts:   p.charts,
		Out:      p.out,
		Settings: p.settings,
		Logger:   p.logger.With("run_id", report.ID),
		Metrics:  p.metrics,
		Results:  &Results{},
	}

	p.logger.Info("pipeline started", "run_id", report.ID, "input", input, "rows", frame.Len(), "steps", len(p.steps))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Info("pipeline stopping", "reason", err)
			report.FinishedAt = domain.Now()
			return report, env.Results, err
		}
		report.Steps = append(report.Steps, p.runStep(ctx, s, env))
	}
	report.FinishedAt = domain.Now()

	p.logger.Info("pipeline finished",
		"run_id", report.ID,
		"ok", report.Count(domain.StepOK),
		"skipped", report.Count(domain.StepSkipped),
		"failed", report.Count(domain.StepFailed),
	)
	p.publish(ctx, report)
	return report, env.Results, nil
}

func (p *Pipeline) runStep(ctx context.Context, s Step, env *Env) domain.StepReport {
	rep := domain.StepReport{Name: s.Name()}

	if missing := env.Frame.Missing(s.Requires()...); len(missing) > 0 {
		rep.Status = domain.StepSkipped
		rep.Missing = missing
		rep.Reason = fmt.Sprintf("missing column(s): %s", strings.Join(missing, ", "))
		fmt.Fprintf(env.Out, "Skipping %s: no %s column(s) found in the dataset.\n", s.Name(), strings.Join(missing, "/"))
		env.Logger.Info("step skipped", "step", s.Name(), "reason", rep.Reason)
		p.metrics.Steps.WithLabelValues(s.Name(), string(rep.Status)).Inc()
		return rep
	}

	start := time.Now()
	artifacts, err := s.Run(ctx, env)
	rep.Duration = time.Since(start)
	rep.Artifacts = artifacts
	p.metrics.StepDuration.WithLabelValues(s.Name()).Observe(rep.Duration.Seconds())

	if err != nil {
		rep.Status = domain.StepFailed
		rep.Reason = err.Error()
		fmt.Fprintf(env.Out, "Step %s failed: %v\n", s.Name(), err)
		env.Logger.Error("step failed", "step", s.Name(), "error", err)
	} else {
		rep.Status = domain.StepOK
		env.Logger.Debug("step finished", "step", s.Name(), "artifacts", len(artifacts), "duration", rep.Duration)
	}
	p.metrics.Steps.WithLabelValues(s.Name(), string(rep.Status)).Inc()
	return rep
}

func (p *Pipeline) publish(ctx context.Context, report domain.RunReport) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, report); err != nil {
		p.logger.Error("publish run report failed", "run_id", report.ID, "error", err)
		p.metrics.ReportsPublished.WithLabelValues("error").Inc()
		return
	}
	p.metrics.ReportsPublished.WithLabelValues("success").Inc()
}
