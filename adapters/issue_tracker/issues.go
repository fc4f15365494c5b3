package issue_tracker

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/khoahotran/notion-blog/internal/domain/comments"
)

type IssueCounter struct {
	client *github.Client
}

// NewIssueCounter builds an authenticated client when token is set. Anonymous
// clients work but share the low unauthenticated search rate limit.
func NewIssueCounter(token string) *IssueCounter {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	return &IssueCounter{client: github.NewClient(httpClient)}
}

// NewIssueCounterWithClient is used by tests to point at a fake API.
func NewIssueCounterWithClient(client *github.Client) *IssueCounter {
	return &IssueCounter{client: client}
}

// CountComments sums comments on the issues Utterances opened for term.
// Title search is fuzzy, so only exact title matches are counted.
func (c *IssueCounter) CountComments(ctx context.Context, repo, term string) (int, error) {
	query := fmt.Sprintf("%q in:title repo:%s label:%s type:issue", term, repo, comments.Label)
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 10},
	}

	result, _, err := c.client.Search.Issues(ctx, query, opts)
	if err != nil {
		return 0, fmt.Errorf("searching issues for %q: %w", term, err)
	}

	total := 0
	for _, issue := range result.Issues {
		if issue.GetTitle() != term {
			continue
		}
		total += issue.GetComments()
	}
	return total, nil
}

var _ comments.IssueCounter = (*IssueCounter)(nil)
