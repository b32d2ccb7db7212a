package issue

import (
	"fmt"
	"time"
)

// Comment is one unit of issue text. The issue body is position 0 and the
// comments follow in the order the tracker returns them.
type Comment struct {
	Body      string    `json:"body"`
	Position  int       `json:"position"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// String returns a short description used in log output
func (c Comment) String() string {
	if c.Author == "" {
		return fmt.Sprintf("comment #%d", c.Position)
	}
	return fmt.Sprintf("comment #%d by @%s", c.Position, c.Author)
}

// Thread is the materialized text of one issue.
type Thread struct {
	Number   int
	Comments []Comment
}

// NewThread creates a Thread with validation
func NewThread(number int, comments []Comment) (Thread, error) {
	if number <= 0 {
		return Thread{}, fmt.Errorf("issue number must be positive, got %d", number)
	}
	return Thread{Number: number, Comments: comments}, nil
}

// PullRequest identifies an open pull request and the commit at its head.
type PullRequest struct {
	Number int
	Title  string
	// HeadOwner is the account that owns the head branch, a fork for most
	// contributions
	HeadOwner string
	HeadSHA   string
}
