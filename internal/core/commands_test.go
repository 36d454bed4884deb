package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlashCommand(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind CommandKind
		wantArgs []string
	}{
		{
			name:     "summarize command",
			body:     "/summarize",
			wantKind: CommandSummarize,
		},
		{
			name:     "review command with surrounding whitespace",
			body:     "  /review  \n",
			wantKind: CommandReview,
		},
		{
			name:     "labels with arguments",
			body:     "/labels bug docs",
			wantKind: CommandLabels,
			wantArgs: []string{"bug", "docs"},
		},
		{
			name:     "assign with arguments",
			body:     "/assign alice bob",
			wantKind: CommandAssign,
			wantArgs: []string{"alice", "bob"},
		},
		{
			name:     "labels without arguments",
			body:     "/labels",
			wantKind: CommandLabels,
		},
		{
			name:     "uppercase keyword is accepted",
			body:     "/Labels bug",
			wantKind: CommandLabels,
			wantArgs: []string{"bug"},
		},
		{
			name:     "plain comment is unrecognized",
			body:     "Looks good to me!",
			wantKind: CommandUnknown,
		},
		{
			name:     "unknown slash keyword",
			body:     "/deploy prod",
			wantKind: CommandUnknown,
		},
		{
			name:     "empty body",
			body:     "   ",
			wantKind: CommandUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ParseSlashCommand(tt.body)
			assert.Equal(t, tt.wantKind, cmd.Kind)
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}
