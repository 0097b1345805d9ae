package project

// Status is the outcome of one initialization step.
type Status string

const (
	StatusDone      Status = "done"
	StatusAbsent    Status = "absent"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusPlanned   Status = "planned"
	StatusFailed    Status = "failed"
)

// Step names, in execution order.
const (
	StepRemoveGit      = "remove-git"
	StepRemoveVenv     = "remove-venv"
	StepRemoveDatabase = "remove-database"
	StepReadme         = "readme"
	StepMetadata       = "metadata"
)

// DetailInterrupted marks steps that never ran because the run was cancelled.
const DetailInterrupted = "interrupted"

// StepResult records what one step did.
type StepResult struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
	Status Status `json:"status" yaml:"status"`
	// Detail is a short human readable note, e.g. why a step was skipped.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Err    error  `json:"-" yaml:"-"`
}

// Report is the outcome of one initialization run.
type Report struct {
	ProjectName string       `json:"project_name" yaml:"project_name"`
	Description string       `json:"description" yaml:"description"`
	DryRun      bool         `json:"dry_run" yaml:"dry_run"`
	// Interrupted is set when the run was cancelled before every step ran.
	Interrupted bool         `json:"interrupted" yaml:"interrupted"`
	Results     []StepResult `json:"results" yaml:"results"`
	FollowUp    []string     `json:"follow_up" yaml:"follow_up"`
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return true
		}
	}

	return false
}

// NotRun counts the steps skipped because the run was interrupted.
func (r *Report) NotRun() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusSkipped && res.Detail == DetailInterrupted {
			n++
		}
	}

	return n
}

// Counts tallies results by status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, res := range r.Results {
		counts[res.Status]++
	}

	return counts
}

// Result returns the result of the named step.
func (r *Report) Result(name string) (StepResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}

	return StepResult{}, false
}
