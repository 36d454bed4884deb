package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v73/github"
)

// checkRunName is the name check runs are created under, shown next to the
// commit in the PR checks UI.
const checkRunName = "Auto Review"

// StatusReporter publishes review results as GitHub check runs.
type StatusReporter interface {
	// ReportNeutral creates a completed check run with a neutral conclusion
	// on the given head SHA, carrying the review text as its summary.
	ReportNeutral(ctx context.Context, owner, repo, headSHA, title, summary string) error
}

type statusReporter struct {
	client Client
}

// NewStatusReporter creates a StatusReporter on top of the given client.
func NewStatusReporter(client Client) StatusReporter {
	return &statusReporter{client: client}
}

func (s *statusReporter) ReportNeutral(ctx context.Context, owner, repo, headSHA, title, summary string) error {
	now := github.Timestamp{Time: time.Now()}
	opts := github.CreateCheckRunOptions{
		Name:        checkRunName,
		HeadSHA:     headSHA,
		Status:      github.Ptr("completed"),
		Conclusion:  github.Ptr("neutral"),
		CompletedAt: &now,
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}

	if _, err := s.client.CreateCheckRun(ctx, owner, repo, opts); err != nil {
		return fmt.Errorf("failed to create check run on %s: %w", headSHA, err)
	}
	return nil
}
