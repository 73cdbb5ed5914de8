package pipeline

import "github.com/couchcryptid/shooting-analytics/internal/domain"

// Provider is implemented by steps that add derived columns.
type Provider interface {
	Provides() []string
}

// PlannedStep is the predicted outcome of a step for a given header.
type PlannedStep struct {
	Name    string
	Missing []string // empty when the step would run
}

// Plan predicts which steps would run for the given columns, accounting for
// the columns that earlier steps derive.
func (p *Pipeline) Plan(columns []string) []PlannedStep {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	out := make([]PlannedStep, 0, len(p.steps))
	for _, s := range p.steps {
		ps := PlannedStep{Name: s.Name()}
		for _, c := range s.Requires() {
			if !present[c] {
				ps.Missing = append(ps.Missing, c)
			}
		}
		if len(ps.Missing) == 0 {
			if pr, ok := s.(Provider); ok {
				for _, c := range pr.Provides() {
					present[c] = true
				}
			}
		}
		out = append(out, ps)
	}
	return out
}

// PlanFrame is Plan over the columns of f.
func (p *Pipeline) PlanFrame(f *domain.Frame) []PlannedStep {
	return p.Plan(f.Columns())
}
