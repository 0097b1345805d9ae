package project

// Request carries the parameters of one initialization run.
type Request struct {
	ProjectName string
	// Description overrides the generated default when non-empty.
	Description    string
	SkipGitRemoval bool
	// DryRun reports what would change without touching the tree.
	DryRun bool
	// Interactive is set when the values were collected by prompts.
	Interactive bool
}

// Validate checks the request before anything on disk is touched.
func (r Request) Validate() error {
	return ValidateName(r.ProjectName)
}
