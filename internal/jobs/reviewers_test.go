package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewerRouterRoute(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{
			name:   "single mapped label",
			labels: []string{"frontend"},
			want:   []string{"ui-team"},
		},
		{
			name:   "multiple labels union in first-occurrence order",
			labels: []string{"bug", "frontend", "docs"},
			want:   []string{"qa-team", "ui-team", "doc-reviewer"},
		},
		{
			name:   "labels sharing a reviewer are deduplicated",
			labels: []string{"bug", "test"},
			want:   []string{"qa-team"},
		},
		{
			name:   "unmapped labels contribute nothing",
			labels: []string{"mystery", "backend"},
			want:   []string{"api-team"},
		},
		{
			name:   "no mapped labels yields empty set",
			labels: []string{"mystery"},
			want:   nil,
		},
		{
			name:   "empty input yields empty set",
			labels: nil,
			want:   nil,
		},
	}

	router := NewReviewerRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router.Route(tt.labels))
		})
	}
}

func TestReviewerRouterInjectedTable(t *testing.T) {
	router := NewReviewerRouter(map[string][]string{
		"bug": {"on-call"},
	})

	assert.Equal(t, []string{"on-call"}, router.Route([]string{"bug"}))
	assert.Nil(t, router.Route([]string{"frontend"}), "injected table replaces the default entirely")
}
