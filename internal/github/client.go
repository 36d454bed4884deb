// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// ChangedFile holds the filename, patch, and optionally the full content of a
// single file touched by a commit. Content is populated separately because it
// requires an extra API call per file.
type ChangedFile struct {
	Filename string
	Patch    string
	Content  string
}

// Client defines the set of GitHub operations the triage flows depend on.
// Implementations classify API failures into the typed errors of this package
// so callers never inspect HTTP responses or error text.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	GetCommitFiles(ctx context.Context, owner, repo, sha string) ([]ChangedFile, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	CreateLabel(ctx context.Context, owner, repo, name, color string) error
	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error
	CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a client authenticated with a legacy personal access
// token instead of a GitHub App installation.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, classify(err)
	}
	return pr, nil
}

// GetCommitFiles retrieves the list of files changed in a single commit,
// with their patches. File contents are not fetched here.
func (g *gitHubClient) GetCommitFiles(ctx context.Context, owner, repo, sha string) ([]ChangedFile, error) {
	commit, _, err := g.client.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		g.logger.Error("failed to get commit", "owner", owner, "repo", repo, "sha", sha, "error", err)
		return nil, classify(err)
	}

	var files []ChangedFile
	for _, file := range commit.Files {
		files = append(files, ChangedFile{
			Filename: file.GetFilename(),
			Patch:    file.GetPatch(),
		})
	}
	return files, nil
}

// GetFileContent fetches the decoded content of a file at a specific ref.
func (g *gitHubClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, owner, repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		g.logger.Error("failed to get file content", "owner", owner, "repo", repo, "path", path, "ref", ref, "error", err)
		return "", classify(err)
	}
	if fileContent == nil {
		return "", nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", classify(err)
	}
	return content, nil
}

// CreateComment creates a new comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
		return classify(err)
	}
	return nil
}

// AddLabels attaches the given labels to an issue or pull request. Labels that
// do not exist on the repository surface as ErrNotFound.
func (g *gitHubClient) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	_, _, err := g.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	if err != nil {
		g.logger.Error("failed to add labels", "owner", owner, "repo", repo, "issue", number, "labels", labels, "error", err)
		return classify(err)
	}
	return nil
}

// CreateLabel creates a label with the given name and color on the repository.
func (g *gitHubClient) CreateLabel(ctx context.Context, owner, repo, name, color string) error {
	label := &github.Label{Name: &name, Color: &color}
	_, _, err := g.client.Issues.CreateLabel(ctx, owner, repo, label)
	if err != nil {
		g.logger.Error("failed to create label", "owner", owner, "repo", repo, "label", name, "error", err)
		return classify(err)
	}
	return nil
}

// RequestReviewers requests reviews from the given users on a pull request.
// Non-collaborator identities surface as ErrPermissionDenied.
func (g *gitHubClient) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error {
	_, _, err := g.client.PullRequests.RequestReviewers(ctx, owner, repo, number,
		github.ReviewersRequest{Reviewers: reviewers})
	if err != nil {
		g.logger.Error("failed to request reviewers", "owner", owner, "repo", repo, "pr", number, "reviewers", reviewers, "error", err)
		return classify(err)
	}
	return nil
}

// CreateCheckRun creates a new check run.
func (g *gitHubClient) CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error) {
	checkRun, _, err := g.client.Checks.CreateCheckRun(ctx, owner, repo, opts)
	if err != nil {
		g.logger.Error("failed to create check run", "owner", owner, "repo", repo, "error", err)
		return nil, classify(err)
	}
	return checkRun, nil
}
