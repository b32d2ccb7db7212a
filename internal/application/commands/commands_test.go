package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid_make_config",
			cmd:  NewMakeConfigCommand(100, "obspy_config/conf.json"),
		},
		{
			name:    "zero_issue_number",
			cmd:     NewMakeConfigCommand(0, "conf.json"),
			wantErr: true,
			errMsg:  "IssueNumber must be greater than 0",
		},
		{
			name:    "make_config_without_path",
			cmd:     NewMakeConfigCommand(7, ""),
			wantErr: true,
			errMsg:  "Path is required",
		},
		{
			name: "valid_read_value",
			cmd:  NewReadValueCommand("docs", "conf.json"),
		},
		{
			name: "read_value_with_empty_key_is_left_to_the_reader",
			cmd:  NewReadValueCommand("", "conf.json"),
		},
		{
			name:    "read_value_without_path",
			cmd:     NewReadValueCommand("docs", ""),
			wantErr: true,
			errMsg:  "Path is required",
		},
		{
			name:    "validate_without_path",
			cmd:     NewValidateConfigCommand(""),
			wantErr: true,
			errMsg:  "Path is required",
		},
		{
			name: "valid_module_list",
			cmd:  NewModuleListCommand("default"),
		},
		{
			name:    "module_list_without_group",
			cmd:     NewModuleListCommand(""),
			wantErr: true,
			errMsg:  "Group is required",
		},
		{
			name: "valid_docs_build",
			cmd:  NewDocsBuildCommand(),
		},
		{
			name:    "negative_docs_build_limit",
			cmd:     &DocsBuildCommand{Limit: -1},
			wantErr: true,
			errMsg:  "Limit",
		},
		{
			name:    "commit_status_without_sha",
			cmd:     NewCommitStatusCommand("", "docs"),
			wantErr: true,
			errMsg:  "SHA is required",
		},
		{
			name: "valid_set_commit_status",
			cmd: &SetCommitStatusCommand{
				SHA: "abc123", State: "pending", Context: "docs",
				TargetURL: "https://docs.obspy.org/pr/12",
			},
		},
		{
			name:    "set_commit_status_unknown_state",
			cmd:     NewSetCommitStatusCommand("abc123", "done", "docs"),
			wantErr: true,
			errMsg:  "State must be one of [pending success error failure]",
		},
		{
			name: "set_commit_status_long_description",
			cmd: &SetCommitStatusCommand{
				SHA: "abc123", State: "error", Context: "docs",
				Description: strings.Repeat("x", 141),
			},
			wantErr: true,
			errMsg:  "Description must be at most 140 characters",
		},
		{
			name: "set_commit_status_bad_url",
			cmd: &SetCommitStatusCommand{
				SHA: "abc123", State: "error", Context: "docs", TargetURL: "not a url",
			},
			wantErr: true,
			errMsg:  "TargetURL must be a URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCommand)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Contains(t, err.Error(), tt.cmd.GetType())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
