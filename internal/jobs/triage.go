package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/core"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/github"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/llm"
)

type handlerFunc func(ctx context.Context, event *core.TriageEvent) error

// TriageJob routes each triage event to its flow through an explicit dispatch
// table keyed by event kind. All side effects go through the injected
// collaborators; the job holds no mutable state across events.
type TriageJob struct {
	gh        github.Client
	agent     llm.Agent
	labels    *github.LabelReconciler
	reporter  github.StatusReporter
	reviewers *ReviewerRouter
	logger    *slog.Logger
	handlers  map[core.EventKind]handlerFunc
}

// NewTriageJob creates the triage job with its collaborators and registers one
// handler per event kind.
func NewTriageJob(
	gh github.Client,
	agent llm.Agent,
	labels *github.LabelReconciler,
	reporter github.StatusReporter,
	reviewers *ReviewerRouter,
	logger *slog.Logger,
) *TriageJob {
	j := &TriageJob{
		gh:        gh,
		agent:     agent,
		labels:    labels,
		reporter:  reporter,
		reviewers: reviewers,
		logger:    logger,
	}
	j.handlers = map[core.EventKind]handlerFunc{
		core.PROpened:       j.handleOpened,
		core.PRSynchronized: j.handleSynchronized,
		core.CommentCreated: j.handleComment,
	}
	return j
}

// Run looks up the handler for the event's kind and executes it.
func (j *TriageJob) Run(ctx context.Context, event *core.TriageEvent) error {
	handler, ok := j.handlers[event.Kind]
	if !ok {
		return fmt.Errorf("no handler registered for event kind %q", event.Kind)
	}
	return handler(ctx, event)
}

// handleOpened enriches a freshly opened PR whose description is blank:
// summary comment, then label suggestion, reconciliation, and reviewer
// routing. A PR that already has a description is left alone.
func (j *TriageJob) handleOpened(ctx context.Context, event *core.TriageEvent) error {
	if strings.TrimSpace(event.PRBody) != "" {
		j.logger.Info("pull request already has a description, skipping enrichment",
			"repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}

	if err := j.postSummary(ctx, event); err != nil {
		return err
	}

	files, err := j.gh.GetCommitFiles(ctx, event.RepoOwner, event.RepoName, event.HeadSHA)
	if err != nil {
		return fmt.Errorf("failed to list changed files: %w", err)
	}

	filenames := make([]string, 0, len(files))
	for _, f := range files {
		filenames = append(filenames, f.Filename)
	}

	raw, err := j.agent.Generate(ctx, llm.LabelPrompt(event.PRTitle, event.PRBody, filenames))
	if err != nil {
		return fmt.Errorf("failed to generate label suggestions: %w", err)
	}

	labels := llm.ParseLabels(raw)
	if len(labels) == 0 {
		j.logger.Info("model suggested no labels", "repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}
	j.logger.Info("applying suggested labels", "repo", event.RepoFullName, "pr", event.PRNumber, "labels", labels)

	if err := j.labels.ApplyLabels(ctx, event.RepoOwner, event.RepoName, event.PRNumber, labels); err != nil {
		return fmt.Errorf("failed to apply labels: %w", err)
	}

	return j.requestReviewers(ctx, event, j.reviewers.Route(labels))
}

// handleSynchronized reviews the head commit of a PR push: review comment plus
// a neutral check run carrying the same text.
func (j *TriageJob) handleSynchronized(ctx context.Context, event *core.TriageEvent) error {
	return j.runReview(ctx, event)
}

// handleComment maps a PR comment to a manual action via the slash-command
// parser. Unrecognized comments are silently ignored.
func (j *TriageJob) handleComment(ctx context.Context, event *core.TriageEvent) error {
	cmd := core.ParseSlashCommand(event.CommentBody)

	switch cmd.Kind {
	case core.CommandSummarize:
		// Comment payloads carry no PR URL, so recover it from the PR.
		pr, err := j.gh.GetPullRequest(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
		if err != nil {
			return fmt.Errorf("failed to fetch pull request for summarize command: %w", err)
		}
		event.PRURL = pr.GetHTMLURL()
		return j.postSummary(ctx, event)

	case core.CommandReview:
		// Comment payloads carry no head SHA, so recover it from the PR.
		pr, err := j.gh.GetPullRequest(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
		if err != nil {
			return fmt.Errorf("failed to fetch pull request for review command: %w", err)
		}
		if pr.GetHead().GetSHA() == "" {
			return fmt.Errorf("pull request %d has no head SHA", event.PRNumber)
		}
		event.PRURL = pr.GetHTMLURL()
		event.HeadSHA = pr.GetHead().GetSHA()
		return j.runReview(ctx, event)

	case core.CommandLabels:
		if len(cmd.Args) == 0 {
			j.logger.Warn("labels command without arguments", "repo", event.RepoFullName, "pr", event.PRNumber)
			return nil
		}
		// User-supplied labels are trusted verbatim, bypassing the model.
		return j.labels.ApplyLabels(ctx, event.RepoOwner, event.RepoName, event.PRNumber, cmd.Args)

	case core.CommandAssign:
		if len(cmd.Args) == 0 {
			j.logger.Warn("assign command without arguments", "repo", event.RepoFullName, "pr", event.PRNumber)
			return nil
		}
		// User-supplied identities bypass the reviewer router.
		return j.requestReviewers(ctx, event, cmd.Args)

	default:
		j.logger.Debug("ignoring unrecognized comment", "repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}
}

// postSummary generates a concise summary for the PR and posts it as a
// comment.
func (j *TriageJob) postSummary(ctx context.Context, event *core.TriageEvent) error {
	raw, err := j.agent.Generate(ctx, llm.SummaryPrompt(event.PRTitle, event.PRURL))
	if err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	summary := llm.ParseText(raw)
	if summary == "" {
		return fmt.Errorf("generated summary is empty")
	}

	if err := j.gh.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, summary); err != nil {
		return fmt.Errorf("failed to post summary comment: %w", err)
	}

	j.logger.Info("summary comment posted", "repo", event.RepoFullName, "pr", event.PRNumber)
	return nil
}

// runReview builds a review prompt from the head commit's first changed files,
// posts the model's review as a comment, and publishes a neutral check run with
// the same text. An empty changed-file list is a no-op.
func (j *TriageJob) runReview(ctx context.Context, event *core.TriageEvent) error {
	files, err := j.gh.GetCommitFiles(ctx, event.RepoOwner, event.RepoName, event.HeadSHA)
	if err != nil {
		return fmt.Errorf("failed to list changed files: %w", err)
	}
	if len(files) == 0 {
		j.logger.Info("commit has no changed files, skipping review",
			"repo", event.RepoFullName, "sha", event.HeadSHA)
		return nil
	}
	if len(files) > llm.MaxPromptFiles {
		files = files[:llm.MaxPromptFiles]
	}

	if err := j.fetchContents(ctx, event, files); err != nil {
		return err
	}

	raw, err := j.agent.Generate(ctx, llm.ReviewPrompt(files))
	if err != nil {
		return fmt.Errorf("failed to generate review: %w", err)
	}
	review := llm.ParseText(raw)
	if review == "" {
		return fmt.Errorf("generated review is empty")
	}

	if err := j.gh.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, review); err != nil {
		return fmt.Errorf("failed to post review comment: %w", err)
	}

	if err := j.reporter.ReportNeutral(ctx, event.RepoOwner, event.RepoName, event.HeadSHA, "Automated review", review); err != nil {
		return fmt.Errorf("failed to report review check run: %w", err)
	}

	j.logger.Info("review posted", "repo", event.RepoFullName, "pr", event.PRNumber, "sha", event.HeadSHA)
	return nil
}

// fetchContents fills in the content of each file at the head SHA. The fetches
// are independent reads and run concurrently, bounded by the prompt file cap.
// Files that no longer exist at the ref (renames, deletions) are left without
// content.
func (j *TriageJob) fetchContents(ctx context.Context, event *core.TriageEvent, files []github.ChangedFile) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range files {
		g.Go(func() error {
			content, err := j.gh.GetFileContent(gctx, event.RepoOwner, event.RepoName, files[i].Filename, event.HeadSHA)
			if err != nil {
				if errors.Is(err, github.ErrNotFound) {
					j.logger.Warn("file missing at head, reviewing patch only",
						"repo", event.RepoFullName, "file", files[i].Filename)
					return nil
				}
				return fmt.Errorf("failed to fetch content of %s: %w", files[i].Filename, err)
			}
			files[i].Content = content
			return nil
		})
	}
	return g.Wait()
}

// requestReviewers asks for reviews from the given identities. A rejection
// because an identity is not a collaborator is logged as a warning and
// swallowed; enrichment is best-effort past that point.
func (j *TriageJob) requestReviewers(ctx context.Context, event *core.TriageEvent, reviewers []string) error {
	if len(reviewers) == 0 {
		return nil
	}

	err := j.gh.RequestReviewers(ctx, event.RepoOwner, event.RepoName, event.PRNumber, reviewers)
	if err != nil {
		if errors.Is(err, github.ErrPermissionDenied) {
			j.logger.Warn("reviewer request rejected, continuing without reviewers",
				"repo", event.RepoFullName, "pr", event.PRNumber, "reviewers", reviewers, "error", err)
			return nil
		}
		return fmt.Errorf("failed to request reviewers: %w", err)
	}

	j.logger.Info("reviewers requested", "repo", event.RepoFullName, "pr", event.PRNumber, "reviewers", reviewers)
	return nil
}
