package domain

import "time"

// StepStatus is the outcome of one pipeline step.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// StepReport records what a pipeline step did.
type StepReport struct {
	Name      string        `json:"name"`
	Status    StepStatus    `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Missing   []string      `json:"missing,omitempty"`
	Artifacts []string      `json:"artifacts,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	ID         string       `json:"id"`
	Input      string       `json:"input"`
	Rows       int          `json:"rows"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepReport `json:"steps"`
}

// Count returns how many steps finished with status s.
func (r RunReport) Count(s StepStatus) int {
	n := 0
	for _, st := range r.Steps {
		if st.Status == s {
			n++
		}
	}
	return n
}

// Step returns the report of the named step.
func (r RunReport) Step(name string) (StepReport, bool) {
	for _, st := range r.Steps {
		if st.Name == name {
			return st, true
		}
	}
	return StepReport{}, false
}
