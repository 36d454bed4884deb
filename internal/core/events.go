// Package core defines the essential interfaces and data structures that form
// the backbone of the application. These components are designed to be
// abstract, allowing for flexible and decoupled implementations of the
// application's logic.
package core

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"
)

// EventKind tags the class of webhook occurrence a TriageEvent represents.
type EventKind string

const (
	// PROpened is a pull_request event with the "opened" action.
	PROpened EventKind = "pr_opened"
	// PRSynchronized is a pull_request event with the "synchronize" action.
	PRSynchronized EventKind = "pr_synchronized"
	// CommentCreated is an issue_comment event with the "created" action on a
	// pull request.
	CommentCreated EventKind = "comment_created"
)

// TriageEvent is a simplified, internal view of a GitHub webhook event. It is
// constructed once per delivery and discarded after handling.
type TriageEvent struct {
	Kind EventKind

	RepoOwner    string
	RepoName     string
	RepoFullName string

	PRNumber int
	PRTitle  string
	PRBody   string
	PRURL    string
	HeadSHA  string

	// CommentBody is set only for CommentCreated events.
	CommentBody string

	InstallationID int64
}

// EventFromPullRequest transforms a raw PullRequestEvent into the internal
// TriageEvent representation. It acts as an anti-corruption layer: payloads
// missing required fields are rejected with an error rather than failing later
// on first field access. Only the "opened" and "synchronize" actions are
// accepted.
func EventFromPullRequest(event *github.PullRequestEvent) (*TriageEvent, error) {
	var kind EventKind
	switch event.GetAction() {
	case "opened":
		kind = PROpened
	case "synchronize":
		kind = PRSynchronized
	default:
		return nil, fmt.Errorf("unhandled pull request action %q", event.GetAction())
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}

	pr := event.GetPullRequest()
	if pr == nil || pr.GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", pr.GetNumber())
	}
	if pr.GetHead().GetSHA() == "" {
		return nil, fmt.Errorf("pull request %d has no head SHA", pr.GetNumber())
	}

	return &TriageEvent{
		Kind:           kind,
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		PRNumber:       pr.GetNumber(),
		PRTitle:        pr.GetTitle(),
		PRBody:         pr.GetBody(),
		PRURL:          pr.GetHTMLURL(),
		HeadSHA:        pr.GetHead().GetSHA(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}

// EventFromIssueComment transforms a raw IssueCommentEvent into the internal
// TriageEvent representation. Comments on plain issues (not pull requests) and
// non-"created" actions are rejected here so the handler can ignore them
// cheaply.
func EventFromIssueComment(event *github.IssueCommentEvent) (*TriageEvent, error) {
	if event.GetAction() != "created" {
		return nil, fmt.Errorf("unhandled issue comment action %q", event.GetAction())
	}

	if !event.GetIssue().IsPullRequest() {
		return nil, fmt.Errorf("comment is not on a pull request")
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}

	prNumber := event.GetIssue().GetNumber()
	if prNumber <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", prNumber)
	}

	if strings.TrimSpace(event.GetComment().GetBody()) == "" {
		return nil, fmt.Errorf("comment body is empty")
	}

	return &TriageEvent{
		Kind:           CommentCreated,
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		PRNumber:       prNumber,
		PRTitle:        event.GetIssue().GetTitle(),
		PRBody:         event.GetIssue().GetBody(),
		CommentBody:    event.GetComment().GetBody(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}
