package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// defaultLabelColor is used when the reconciler has to create a label that
// does not exist on the repository yet.
const defaultLabelColor = "ededed"

// LabelReconciler ensures a set of label names exists on a repository and is
// attached to an issue or pull request, creating missing labels on demand.
type LabelReconciler struct {
	client Client
	logger *slog.Logger
}

// NewLabelReconciler creates a reconciler on top of the given client.
func NewLabelReconciler(client Client, logger *slog.Logger) *LabelReconciler {
	return &LabelReconciler{client: client, logger: logger}
}

// ApplyLabels attaches every label to the issue. A label missing from the
// repository is created once with the default color and the add is retried
// exactly once; any other failure propagates. On successful return every
// requested label is attached.
func (r *LabelReconciler) ApplyLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	for _, label := range labels {
		if err := r.applyLabel(ctx, owner, repo, number, label); err != nil {
			return err
		}
	}
	return nil
}

func (r *LabelReconciler) applyLabel(ctx context.Context, owner, repo string, number int, label string) error {
	err := r.client.AddLabels(ctx, owner, repo, number, []string{label})
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to add label %q: %w", label, err)
	}

	r.logger.Info("label missing from repository, creating it", "owner", owner, "repo", repo, "label", label)
	if err := r.client.CreateLabel(ctx, owner, repo, label, defaultLabelColor); err != nil {
		return fmt.Errorf("failed to create label %q: %w", label, err)
	}

	if err := r.client.AddLabels(ctx, owner, repo, number, []string{label}); err != nil {
		return fmt.Errorf("failed to add label %q after creating it: %w", label, err)
	}
	return nil
}
