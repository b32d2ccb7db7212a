package githubinfra

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"

	"github.com/obspy/obshub/internal/core/status"
)

// ListStatuses returns every status posted to ref, across all pages
func (s *Client) ListStatuses(ctx context.Context, ref string) ([]status.Status, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var statuses []status.Status
	for {
		page, resp, err := s.client.Repositories.ListStatuses(ctx, s.owner, s.repo, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list statuses of %s (page %d): %w", ref, opts.Page, err)
		}

		for _, st := range page {
			statuses = append(statuses, status.Status{
				Context:     st.GetContext(),
				State:       status.State(st.GetState()),
				Description: st.GetDescription(),
				TargetURL:   st.GetTargetURL(),
				UpdatedAt:   st.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return statuses, nil
}

// CreateStatus posts st to the commit sha
func (s *Client) CreateStatus(ctx context.Context, sha string, st status.Status) error {
	repoStatus := &github.RepoStatus{
		State:   github.String(string(st.State)),
		Context: github.String(st.Context),
	}
	if st.Description != "" {
		repoStatus.Description = github.String(st.Description)
	}
	if st.TargetURL != "" {
		repoStatus.TargetURL = github.String(st.TargetURL)
	}

	if _, _, err := s.client.Repositories.CreateStatus(ctx, s.owner, s.repo, sha, repoStatus); err != nil {
		return fmt.Errorf("failed to create status on %s: %w", sha, err)
	}

	s.logger.Info("commit status created",
		"repo", s.owner+"/"+s.repo,
		"sha", sha,
		"context", st.Context,
		"state", st.State)
	return nil
}
