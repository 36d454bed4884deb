package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v73/github"
)

// Sentinel error classes the rest of the application branches on. Recovery
// logic matches these with errors.Is instead of inspecting response text.
var (
	// ErrNotFound marks a missing resource, e.g. a label that does not exist
	// on the repository yet.
	ErrNotFound = errors.New("github: resource not found")

	// ErrPermissionDenied marks a request rejected for lack of rights, e.g.
	// requesting a review from an identity that is not a collaborator.
	ErrPermissionDenied = errors.New("github: permission denied")
)

// classify maps a go-github API error to one of the typed error classes,
// keeping the original error in the chain. Errors that fit no class are
// returned unchanged. The free-text "collaborator" match lives only here, at
// the collaborator boundary: GitHub signals a non-collaborator review request
// as a 422 whose message mentions collaborators.
func classify(err error) error {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return err
	}

	switch ghErr.Response.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case http.StatusUnprocessableEntity:
		if strings.Contains(strings.ToLower(ghErr.Message), "collaborator") {
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}
	return err
}
