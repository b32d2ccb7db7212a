package ports

import (
	"context"

	"github.com/obspy/obshub/internal/core/issue"
	"github.com/obspy/obshub/internal/core/status"
)

// CommentSource defines the interface for retrieving issue text
type CommentSource interface {
	// FetchThread returns the issue body and its comments in precedence
	// order. The body is position 0.
	FetchThread(ctx context.Context, number int) (issue.Thread, error)

	// Name identifies the source in log output
	Name() string
}

// PullRequestLister defines the interface for listing pull requests
type PullRequestLister interface {
	// ListOpenPullRequests returns open pull requests, most recently
	// updated first
	ListOpenPullRequests(ctx context.Context) ([]issue.PullRequest, error)
}

// CommitStatusGateway defines the interface for reading and posting commit
// statuses
type CommitStatusGateway interface {
	// ListStatuses returns every status posted to ref
	ListStatuses(ctx context.Context, ref string) ([]status.Status, error)

	// CreateStatus posts s to the commit sha
	CreateStatus(ctx context.Context, sha string, s status.Status) error
}
