package jobs_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	gogithub "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/core"
	gh "github.com/shweta-bavishi/github-auto-review-bot/internal/github"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/jobs"
	"github.com/shweta-bavishi/github-auto-review-bot/mocks"
)

// promptContaining matches a prompt string that contains every given substring.
type promptContaining struct {
	substrings []string
}

func (m promptContaining) Matches(x any) bool {
	s, ok := x.(string)
	if !ok {
		return false
	}
	for _, sub := range m.substrings {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func (m promptContaining) String() string {
	return fmt.Sprintf("prompt containing %q", m.substrings)
}

func prompt(substrings ...string) gomock.Matcher {
	return promptContaining{substrings: substrings}
}

func newTestJob(t *testing.T) (*jobs.TriageJob, *mocks.MockClient, *mocks.MockAgent) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	agent := mocks.NewMockAgent(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	job := jobs.NewTriageJob(
		client,
		agent,
		gh.NewLabelReconciler(client, logger),
		gh.NewStatusReporter(client),
		jobs.NewReviewerRouter(nil),
		logger,
	)
	return job, client, agent
}

func openedEvent(body string) *core.TriageEvent {
	return &core.TriageEvent{
		Kind:         core.PROpened,
		RepoOwner:    "octocat",
		RepoName:     "widgets",
		RepoFullName: "octocat/widgets",
		PRNumber:     42,
		PRTitle:      "Fix crash",
		PRBody:       body,
		PRURL:        "https://github.com/octocat/widgets/pull/42",
		HeadSHA:      "abc123",
	}
}

// Scenario A: blank-body PR gets a summary comment, a model label suggestion,
// missing-label recovery, and label application.
func TestOpenedPRWithBlankBody(t *testing.T) {
	job, client, agent := newTestJob(t)

	notFound := fmt.Errorf("%w: no such label", gh.ErrNotFound)
	gomock.InOrder(
		agent.EXPECT().Generate(gomock.Any(), prompt("Fix crash", "pull/42")).Return("  A concise summary.  ", nil),
		client.EXPECT().CreateComment(gomock.Any(), "octocat", "widgets", 42, "A concise summary.").Return(nil),
		client.EXPECT().GetCommitFiles(gomock.Any(), "octocat", "widgets", "abc123").
			Return([]gh.ChangedFile{{Filename: "a.ts", Patch: "@@ -1 +1 @@"}}, nil),
		agent.EXPECT().Generate(gomock.Any(), prompt("Fix crash", "a.ts", "comma-separated")).Return("Bugfix", nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"bugfix"}).Return(notFound),
		client.EXPECT().CreateLabel(gomock.Any(), "octocat", "widgets", "bugfix", gomock.Any()).Return(nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"bugfix"}).Return(nil),
	)
	// "bugfix" maps to no reviewer, so no RequestReviewers call is expected.

	err := job.Run(context.Background(), openedEvent(""))
	require.NoError(t, err)
}

// Scenario B: a PR opened with a description is a no-op.
func TestOpenedPRWithDescription(t *testing.T) {
	job, _, _ := newTestJob(t)

	err := job.Run(context.Background(), openedEvent("Already described."))
	require.NoError(t, err)
}

func TestOpenedPRRoutesReviewers(t *testing.T) {
	job, client, agent := newTestJob(t)

	gomock.InOrder(
		agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Summary.", nil),
		client.EXPECT().CreateComment(gomock.Any(), "octocat", "widgets", 42, "Summary.").Return(nil),
		client.EXPECT().GetCommitFiles(gomock.Any(), "octocat", "widgets", "abc123").
			Return([]gh.ChangedFile{{Filename: "a.ts"}}, nil),
		agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("bug, frontend, test", nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"bug"}).Return(nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"frontend"}).Return(nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"test"}).Return(nil),
		// qa-team appears once even though bug and test both map to it.
		client.EXPECT().RequestReviewers(gomock.Any(), "octocat", "widgets", 42, []string{"qa-team", "ui-team"}).Return(nil),
	)

	err := job.Run(context.Background(), openedEvent(""))
	require.NoError(t, err)
}

// Scenario E: a non-collaborator rejection during reviewer request is
// swallowed with a warning; prior comment and labels stand.
func TestOpenedPRReviewerRejectionIsSwallowed(t *testing.T) {
	job, client, agent := newTestJob(t)

	denied := fmt.Errorf("%w: not a collaborator", gh.ErrPermissionDenied)
	gomock.InOrder(
		agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Summary.", nil),
		client.EXPECT().CreateComment(gomock.Any(), "octocat", "widgets", 42, "Summary.").Return(nil),
		client.EXPECT().GetCommitFiles(gomock.Any(), "octocat", "widgets", "abc123").
			Return([]gh.ChangedFile{{Filename: "a.ts"}}, nil),
		agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("bug", nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"bug"}).Return(nil),
		client.EXPECT().RequestReviewers(gomock.Any(), "octocat", "widgets", 42, []string{"qa-team"}).Return(denied),
	)

	err := job.Run(context.Background(), openedEvent(""))
	require.NoError(t, err, "permission rejection must not escape the handler")
}

func synchronizedEvent() *core.TriageEvent {
	ev := openedEvent("")
	ev.Kind = core.PRSynchronized
	return ev
}

// Scenario C: five changed files, only the first three reach the prompt; a
// neutral check run is created with the review text.
func TestSynchronizedPRReviewsFirstThreeFiles(t *testing.T) {
	job, client, agent := newTestJob(t)

	files := make([]gh.ChangedFile, 5)
	for i := range files {
		files[i] = gh.ChangedFile{
			Filename: fmt.Sprintf("file%d.go", i),
			Patch:    fmt.Sprintf("@@ patch %d @@", i),
		}
	}

	client.EXPECT().GetCommitFiles(gomock.Any(), "octocat", "widgets", "abc123").Return(files, nil)
	for i := range 3 {
		client.EXPECT().GetFileContent(gomock.Any(), "octocat", "widgets", fmt.Sprintf("file%d.go", i), "abc123").
			Return(fmt.Sprintf("package file%d", i), nil)
	}

	agent.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p string) (string, error) {
			for i := range 3 {
				assert.Contains(t, p, fmt.Sprintf("file%d.go", i))
			}
			assert.NotContains(t, p, "file3.go")
			assert.NotContains(t, p, "file4.go")
			return "Review text.", nil
		})

	client.EXPECT().CreateComment(gomock.Any(), "octocat", "widgets", 42, "Review text.").Return(nil)
	client.EXPECT().CreateCheckRun(gomock.Any(), "octocat", "widgets", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, opts gogithub.CreateCheckRunOptions) (*gogithub.CheckRun, error) {
			assert.Equal(t, "abc123", opts.HeadSHA)
			assert.Equal(t, "completed", opts.GetStatus())
			assert.Equal(t, "neutral", opts.GetConclusion())
			require.NotNil(t, opts.Output)
			assert.Equal(t, "Review text.", opts.Output.GetSummary())
			return &gogithub.CheckRun{ID: gogithub.Ptr(int64(1))}, nil
		})

	err := job.Run(context.Background(), synchronizedEvent())
	require.NoError(t, err)
}

func TestSynchronizedPRWithNoFilesIsNoOp(t *testing.T) {
	job, client, _ := newTestJob(t)

	client.EXPECT().GetCommitFiles(gomock.Any(), "octocat", "widgets", "abc123").Return(nil, nil)

	err := job.Run(context.Background(), synchronizedEvent())
	require.NoError(t, err)
}

func commentEvent(body string) *core.TriageEvent {
	return &core.TriageEvent{
		Kind:         core.CommentCreated,
		RepoOwner:    "octocat",
		RepoName:     "widgets",
		RepoFullName: "octocat/widgets",
		PRNumber:     42,
		PRTitle:      "Fix crash",
		CommentBody:  body,
	}
}

// Scenario D: /labels applies user-supplied labels directly, no model call.
func TestLabelsCommandBypassesModel(t *testing.T) {
	job, client, _ := newTestJob(t)

	gomock.InOrder(
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"bug"}).Return(nil),
		client.EXPECT().AddLabels(gomock.Any(), "octocat", "widgets", 42, []string{"docs"}).Return(nil),
	)

	err := job.Run(context.Background(), commentEvent("/labels bug docs"))
	require.NoError(t, err)
}

func TestAssignCommandRequestsReviewersVerbatim(t *testing.T) {
	job, client, _ := newTestJob(t)

	client.EXPECT().RequestReviewers(gomock.Any(), "octocat", "widgets", 42, []string{"alice", "bob"}).Return(nil)

	err := job.Run(context.Background(), commentEvent("/assign alice bob"))
	require.NoError(t, err)
}

func TestSummarizeCommandPostsSummary(t *testing.T) {
	job, client, agent := newTestJob(t)

	pr := &gogithub.PullRequest{HTMLURL: gogithub.Ptr("https://github.com/octocat/widgets/pull/42")}
	gomock.InOrder(
		client.EXPECT().GetPullRequest(gomock.Any(), "octocat", "widgets", 42).Return(pr, nil),
		agent.EXPECT().Generate(gomock.Any(), prompt("Fix crash", "pull/42")).Return("Summary.", nil),
		client.EXPECT().CreateComment(gomock.Any(), "octocat", "widgets", 42, "Summary.").Return(nil),
	)

	err := job.Run(context.Background(), commentEvent("/summarize"))
	require.NoError(t, err)
}

func TestReviewCommandRecoversHeadSHA(t *testing.T) {
	job, client, agent := newTestJob(t)

	pr := &gogithub.PullRequest{
		HTMLURL: gogithub.Ptr("https://github.com/octocat/widgets/pull/42"),
		Head:    &gogithub.PullRequestBranch{SHA: gogithub.Ptr("def456")},
	}
	client.EXPECT().GetPullRequest(gomock.Any(), "octocat", "widgets", 42).Return(pr, nil)
	client.EXPECT().GetCommitFiles(gomock.Any(), "octocat", "widgets", "def456").
		Return([]gh.ChangedFile{{Filename: "a.go", Patch: "@@"}}, nil)
	client.EXPECT().GetFileContent(gomock.Any(), "octocat", "widgets", "a.go", "def456").Return("package a", nil)
	agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Review.", nil)
	client.EXPECT().CreateComment(gomock.Any(), "octocat", "widgets", 42, "Review.").Return(nil)
	client.EXPECT().CreateCheckRun(gomock.Any(), "octocat", "widgets", gomock.Any()).
		Return(&gogithub.CheckRun{}, nil)

	err := job.Run(context.Background(), commentEvent("/review"))
	require.NoError(t, err)
}

func TestUnrecognizedCommentIsIgnored(t *testing.T) {
	job, _, _ := newTestJob(t)

	err := job.Run(context.Background(), commentEvent("Nice work!"))
	require.NoError(t, err)
}

func TestModelFailurePropagates(t *testing.T) {
	job, _, agent := newTestJob(t)

	agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("model unavailable"))

	err := job.Run(context.Background(), openedEvent(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary")
}
