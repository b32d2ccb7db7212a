package githubinfra

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"

	"github.com/obspy/obshub/internal/core/issue"
)

// ListOpenPullRequests returns the open pull requests, most recently updated
// first
func (s *Client) ListOpenPullRequests(ctx context.Context) ([]issue.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var prs []issue.PullRequest
	for {
		page, resp, err := s.client.PullRequests.List(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests (page %d): %w", opts.Page, err)
		}

		for _, pr := range page {
			prs = append(prs, issue.PullRequest{
				Number:    pr.GetNumber(),
				Title:     pr.GetTitle(),
				HeadOwner: pr.GetHead().GetUser().GetLogin(),
				HeadSHA:   pr.GetHead().GetSHA(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	s.logger.Debug("listed open pull requests",
		"repo", s.owner+"/"+s.repo,
		"count", len(prs))

	return prs, nil
}
