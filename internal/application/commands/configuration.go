package commands

// MakeConfigCommand builds the configuration file for an issue
type MakeConfigCommand struct {
	IssueNumber int    `json:"issue_number" validate:"gt=0"`
	Path        string `json:"path" validate:"required"`
	// Strict reports unrecognized directive keys
	Strict bool `json:"strict"`
}

// NewMakeConfigCommand creates a new make config command
func NewMakeConfigCommand(issueNumber int, path string) *MakeConfigCommand {
	return &MakeConfigCommand{
		IssueNumber: issueNumber,
		Path:        path,
	}
}

// GetType returns the command type
func (c *MakeConfigCommand) GetType() string {
	return "make-config"
}

// Validate validates the make config command
func (c *MakeConfigCommand) Validate() error {
	return validateStruct(c)
}

// ReadValueCommand reads one value from a configuration file
type ReadValueCommand struct {
	Key       string `json:"key"`
	Path      string `json:"path" validate:"required"`
	Separator string `json:"separator"`
	Prefix    string `json:"prefix"`
}

// NewReadValueCommand creates a new read value command
func NewReadValueCommand(key, path string) *ReadValueCommand {
	return &ReadValueCommand{
		Key:  key,
		Path: path,
	}
}

// GetType returns the command type
func (c *ReadValueCommand) GetType() string {
	return "read-config-value"
}

// Validate validates the read value command
func (c *ReadValueCommand) Validate() error {
	return validateStruct(c)
}

// ValidateConfigCommand checks a configuration file without reading values
type ValidateConfigCommand struct {
	Path string `json:"path" validate:"required"`
}

// NewValidateConfigCommand creates a new validate config command
func NewValidateConfigCommand(path string) *ValidateConfigCommand {
	return &ValidateConfigCommand{Path: path}
}

// GetType returns the command type
func (c *ValidateConfigCommand) GetType() string {
	return "validate-config"
}

// Validate validates the validate config command
func (c *ValidateConfigCommand) Validate() error {
	return validateStruct(c)
}

// ModuleListCommand lists the modules of a group, optionally resolved
// against a configuration file
type ModuleListCommand struct {
	Group      string `json:"group" validate:"required"`
	ConfigPath string `json:"config_path,omitempty"`
	GroupsFile string `json:"groups_file,omitempty"`
	Separator  string `json:"separator"`
	Prefix     string `json:"prefix"`
}

// NewModuleListCommand creates a new module list command
func NewModuleListCommand(group string) *ModuleListCommand {
	return &ModuleListCommand{
		Group:     group,
		Separator: " ",
	}
}

// GetType returns the command type
func (c *ModuleListCommand) GetType() string {
	return "get-module-list"
}

// Validate validates the module list command
func (c *ModuleListCommand) Validate() error {
	return validateStruct(c)
}
