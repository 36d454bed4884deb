// Package handler provides HTTP handlers for the webhook ingress.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/config"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/core"
)

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle validates, parses, and dispatches GitHub webhook deliveries.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, []byte(h.cfg.GitHub.WebhookSecret))
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	rawEvent, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	switch e := rawEvent.(type) {
	case *github.PullRequestEvent:
		event, err := core.EventFromPullRequest(e)
		if err != nil {
			h.logger.Debug("ignoring pull request event", "reason", err.Error(), "repo", e.GetRepo().GetFullName())
			_, _ = fmt.Fprint(w, "Event ignored")
			return
		}
		h.dispatch(r.Context(), w, event)

	case *github.IssueCommentEvent:
		event, err := core.EventFromIssueComment(e)
		if err != nil {
			h.logger.Debug("ignoring issue comment", "reason", err.Error(), "repo", e.GetRepo().GetFullName())
			_, _ = fmt.Fprint(w, "Comment ignored")
			return
		}
		h.dispatch(r.Context(), w, event)

	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", github.WebHookType(r))
		_, _ = fmt.Fprint(w, "Event type not handled")
	}
}

func (h *WebhookHandler) dispatch(ctx context.Context, w http.ResponseWriter, event *core.TriageEvent) {
	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.Error("failed to dispatch triage event", "error", err, "repo", event.RepoFullName, "kind", event.Kind)
		http.Error(w, "Failed to queue event", http.StatusInternalServerError)
		return
	}

	h.logger.Info("triage event dispatched", "repo", event.RepoFullName, "kind", event.Kind, "pr", event.PRNumber)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Event accepted")
}
