package jobs

// ReviewerRouter maps applied labels to reviewer identities via an injected,
// immutable capability table. Labels absent from the table contribute no
// reviewers.
type ReviewerRouter struct {
	table map[string][]string
}

// DefaultReviewerTable returns the built-in label-to-reviewers mapping.
func DefaultReviewerTable() map[string][]string {
	return map[string][]string{
		"frontend":    {"ui-team"},
		"backend":     {"api-team"},
		"bug":         {"qa-team"},
		"docs":        {"doc-reviewer"},
		"test":        {"qa-team"},
		"refactor":    {"arch-team"},
		"enhancement": {"feature-owner"},
	}
}

// NewReviewerRouter creates a router over the given table. Passing nil uses
// the default table.
func NewReviewerRouter(table map[string][]string) *ReviewerRouter {
	if table == nil {
		table = DefaultReviewerTable()
	}
	return &ReviewerRouter{table: table}
}

// Route flat-maps each label through the table and returns the de-duplicated
// reviewer set, ordered by first occurrence.
func (r *ReviewerRouter) Route(labels []string) []string {
	var reviewers []string
	seen := make(map[string]struct{})

	for _, label := range labels {
		for _, reviewer := range r.table[label] {
			if _, ok := seen[reviewer]; ok {
				continue
			}
			seen[reviewer] = struct{}{}
			reviewers = append(reviewers, reviewer)
		}
	}
	return reviewers
}
