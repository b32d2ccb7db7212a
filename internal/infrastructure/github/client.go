package githubinfra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/obspy/obshub/internal/core/issue"
)

const perPage = 100

// ErrRepositoryRequired is returned when owner or repo is missing
var ErrRepositoryRequired = errors.New("github repository must be given as owner/name")

// Options configures the GitHub client
type Options struct {
	Owner string
	Repo  string
	Token string
	// BaseURL overrides the API endpoint (GitHub Enterprise or tests)
	BaseURL string
	Timeout time.Duration
}

// Client reads issue threads, pull requests and commit statuses through the
// GitHub REST API
type Client struct {
	client *github.Client
	owner  string
	repo   string
	logger *slog.Logger
}

// NewClient creates a new GitHub client
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, ErrRepositoryRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := github.NewClient(&http.Client{Timeout: timeout})
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = base
	}

	return &Client{
		client: client,
		owner:  opts.Owner,
		repo:   opts.Repo,
		logger: logger,
	}, nil
}

// ParseRepository splits "owner/name" into its parts
func ParseRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrRepositoryRequired, s)
	}
	return owner, repo, nil
}

// Name returns the source name
func (s *Client) Name() string {
	return "github:" + s.owner + "/" + s.repo
}

// FetchThread returns the issue body followed by every comment in creation
// order
func (s *Client) FetchThread(ctx context.Context, number int) (issue.Thread, error) {
	iss, _, err := s.client.Issues.Get(ctx, s.owner, s.repo, number)
	if err != nil {
		return issue.Thread{}, fmt.Errorf("failed to get issue: %w", err)
	}

	comments := []issue.Comment{{
		Body:      iss.GetBody(),
		Position:  0,
		Author:    iss.GetUser().GetLogin(),
		CreatedAt: iss.GetCreatedAt().Time,
	}}

	opts := &github.IssueListCommentsOptions{
		Sort:        github.String("created"),
		Direction:   github.String("asc"),
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	for {
		page, resp, err := s.client.Issues.ListComments(ctx, s.owner, s.repo, number, opts)
		if err != nil {
			return issue.Thread{}, fmt.Errorf("failed to list comments (page %d): %w", opts.Page, err)
		}

		for _, c := range page {
			comments = append(comments, issue.Comment{
				Body:      c.GetBody(),
				Position:  len(comments),
				Author:    c.GetUser().GetLogin(),
				CreatedAt: c.GetCreatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	s.logger.Debug("listed issue comments",
		"repo", s.owner+"/"+s.repo,
		"issue", number,
		"comments", len(comments)-1)

	return issue.NewThread(number, comments)
}
