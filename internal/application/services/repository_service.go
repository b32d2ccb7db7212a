package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obspy/obshub/internal/application/commands"
	"github.com/obspy/obshub/internal/application/ports"
	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/directive"
	"github.com/obspy/obshub/internal/core/issue"
	"github.com/obspy/obshub/internal/core/merge"
	"github.com/obspy/obshub/internal/core/status"
)

// RepositoryService answers questions about the repository as a whole:
// which pull requests ask for a docs build and what state their commits
// are in
type RepositoryService struct {
	threads       ports.CommentSource
	pulls         ports.PullRequestLister
	statuses      ports.CommitStatusGateway
	parserOptions directive.Options
	logger        *slog.Logger
}

// NewRepositoryService creates a new repository service
func NewRepositoryService(
	threads ports.CommentSource,
	pulls ports.PullRequestLister,
	statuses ports.CommitStatusGateway,
	parserOptions directive.Options,
	logger *slog.Logger,
) *RepositoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepositoryService{
		threads:       threads,
		pulls:         pulls,
		statuses:      statuses,
		parserOptions: parserOptions,
		logger:        logger,
	}
}

// DocsBuildRequests returns the open pull requests whose merged directives
// set docs, in the order the tracker lists them
func (s *RepositoryService) DocsBuildRequests(ctx context.Context, cmd *commands.DocsBuildCommand) ([]issue.PullRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	parser, err := directive.NewParser(s.parserOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create directive parser: %w", err)
	}
	merger := merge.NewMerger(parser)

	prs, err := s.pulls.ListOpenPullRequests(ctx)
	if err != nil {
		return nil, err
	}
	if cmd.Limit > 0 && len(prs) > cmd.Limit {
		prs = prs[:cmd.Limit]
	}

	var requested []issue.PullRequest
	for _, pr := range prs {
		thread, err := s.threads.FetchThread(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pull request #%d: %w", pr.Number, err)
		}

		merged := merger.Merge(thread.Comments)
		docs, _ := merged.Config.Get(config.KeyDocs)
		s.logger.Debug("checked pull request",
			"pr", pr.Number,
			"docs", docs.Bool(),
			"directives", merged.Applied)
		if docs.Bool() {
			requested = append(requested, pr)
		}
	}

	s.logger.Info("checked open pull requests for docs builds",
		"checked", len(prs),
		"requested", len(requested))
	return requested, nil
}

// CommitStatus returns the current state of one context on a commit, or the
// combined state of all contexts when cmd.Context is empty. A commit without
// a matching status yields status.ErrNoStatus.
func (s *RepositoryService) CommitStatus(ctx context.Context, cmd *commands.CommitStatusCommand) (status.State, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	statuses, err := s.statuses.ListStatuses(ctx, cmd.SHA)
	if err != nil {
		return "", err
	}

	state, ok := currentState(statuses, cmd.Context)
	if !ok {
		if cmd.Context == "" {
			return "", fmt.Errorf("%w on %s", status.ErrNoStatus, cmd.SHA)
		}
		return "", fmt.Errorf("%w for context %q on %s", status.ErrNoStatus, cmd.Context, cmd.SHA)
	}
	return state, nil
}

func currentState(statuses []status.Status, statusContext string) (status.State, bool) {
	if statusContext == "" {
		return status.Combined(statuses)
	}
	return status.Current(statuses, statusContext)
}

// SetCommitStatusResult describes the outcome of SetCommitStatus
type SetCommitStatusResult struct {
	Created bool
	// Previous is the state the context had before, empty when it had none
	Previous status.State
}

// SetCommitStatus posts a status to a commit unless one of the skip
// conditions of cmd holds.
func (s *RepositoryService) SetCommitStatus(ctx context.Context, cmd *commands.SetCommitStatusCommand) (*SetCommitStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	state, err := status.ParseState(cmd.State)
	if err != nil {
		return nil, err
	}

	result := &SetCommitStatusResult{}
	if cmd.OnlyWhenChanged || cmd.OnlyWhenNoStatus {
		statuses, err := s.statuses.ListStatuses(ctx, cmd.SHA)
		if err != nil {
			return nil, err
		}
		previous, ok := status.Current(statuses, cmd.Context)
		result.Previous = previous

		switch {
		case cmd.OnlyWhenNoStatus && ok:
			s.logger.Info("commit already has a status, skipping",
				"sha", cmd.SHA, "context", cmd.Context, "state", previous)
			return result, nil
		case cmd.OnlyWhenChanged && ok && previous == state:
			s.logger.Info("commit status would not change, skipping",
				"sha", cmd.SHA, "context", cmd.Context, "state", previous)
			return result, nil
		}
	}

	err = s.statuses.CreateStatus(ctx, cmd.SHA, status.Status{
		Context:     cmd.Context,
		State:       state,
		Description: cmd.Description,
		TargetURL:   cmd.TargetURL,
	})
	if err != nil {
		return nil, err
	}
	result.Created = true
	return result, nil
}
