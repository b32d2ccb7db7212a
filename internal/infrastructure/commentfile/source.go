package commentfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/obspy/obshub/internal/core/issue"
)

// CommentSource reads an issue thread from a local JSON dump. The file holds
// an array of comments; entries are ordered by position.
type CommentSource struct {
	path string
}

// NewCommentSource creates a new file comment source
func NewCommentSource(path string) *CommentSource {
	return &CommentSource{path: path}
}

// Name returns the source name
func (s *CommentSource) Name() string {
	return "file:" + s.path
}

// FetchThread decodes the dump. The issue number is only recorded.
func (s *CommentSource) FetchThread(ctx context.Context, number int) (issue.Thread, error) {
	if err := ctx.Err(); err != nil {
		return issue.Thread{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return issue.Thread{}, fmt.Errorf("failed to read comments file: %w", err)
	}

	var comments []issue.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return issue.Thread{}, fmt.Errorf("failed to parse comments file %s: %w", s.path, err)
	}

	slices.SortStableFunc(comments, func(a, b issue.Comment) int {
		return a.Position - b.Position
	})

	return issue.NewThread(number, comments)
}
