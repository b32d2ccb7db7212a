package commands

// DocsBuildCommand finds open pull requests whose threads request a docs
// build
type DocsBuildCommand struct {
	// Limit caps the pull requests checked, most recently updated first.
	// Zero checks all of them.
	Limit int `json:"limit" validate:"gte=0"`
}

// NewDocsBuildCommand creates a new docs build command
func NewDocsBuildCommand() *DocsBuildCommand {
	return &DocsBuildCommand{}
}

// GetType returns the command type
func (c *DocsBuildCommand) GetType() string {
	return "docs-build-requests"
}

// Validate validates the docs build command
func (c *DocsBuildCommand) Validate() error {
	return validateStruct(c)
}

// CommitStatusCommand reads the current status of a commit
type CommitStatusCommand struct {
	SHA string `json:"sha" validate:"required"`
	// Context selects one status context, empty for the combined state
	Context string `json:"context,omitempty"`
}

// NewCommitStatusCommand creates a new commit status command
func NewCommitStatusCommand(sha, context string) *CommitStatusCommand {
	return &CommitStatusCommand{SHA: sha, Context: context}
}

// GetType returns the command type
func (c *CommitStatusCommand) GetType() string {
	return "commit-status"
}

// Validate validates the commit status command
func (c *CommitStatusCommand) Validate() error {
	return validateStruct(c)
}

// SetCommitStatusCommand posts a status to a commit
type SetCommitStatusCommand struct {
	SHA         string `json:"sha" validate:"required"`
	State       string `json:"state" validate:"required,oneof=pending success error failure"`
	Context     string `json:"context" validate:"required"`
	Description string `json:"description,omitempty" validate:"max=140"`
	TargetURL   string `json:"target_url,omitempty" validate:"omitempty,url"`
	// OnlyWhenChanged skips the post when the context already has State
	OnlyWhenChanged bool `json:"only_when_changed"`
	// OnlyWhenNoStatus skips the post when the context has any status
	OnlyWhenNoStatus bool `json:"only_when_no_status"`
}

// NewSetCommitStatusCommand creates a new set commit status command
func NewSetCommitStatusCommand(sha, state, context string) *SetCommitStatusCommand {
	return &SetCommitStatusCommand{
		SHA:     sha,
		State:   state,
		Context: context,
	}
}

// GetType returns the command type
func (c *SetCommitStatusCommand) GetType() string {
	return "set-commit-status"
}

// Validate validates the set commit status command
func (c *SetCommitStatusCommand) Validate() error {
	return validateStruct(c)
}
