package core

import (
	"strings"
)

// CommandKind identifies the manual action a slash command maps to.
type CommandKind string

const (
	// CommandSummarize re-invokes the PR summary flow.
	CommandSummarize CommandKind = "summarize"
	// CommandReview re-invokes the commit review flow.
	CommandReview CommandKind = "review"
	// CommandLabels applies user-supplied labels verbatim.
	CommandLabels CommandKind = "labels"
	// CommandAssign requests user-supplied reviewers verbatim.
	CommandAssign CommandKind = "assign"
	// CommandUnknown marks a comment that is not a recognized command.
	CommandUnknown CommandKind = "unknown"
)

// SlashCommand is a manual trigger parsed from a PR comment body.
type SlashCommand struct {
	Kind CommandKind
	Args []string
}

// ParseSlashCommand maps the leading whitespace-delimited token of a trimmed
// comment body to one of the fixed manual actions. Trailing tokens become the
// command's arguments. Anything unrecognized yields CommandUnknown.
func ParseSlashCommand(body string) SlashCommand {
	fields := strings.Fields(strings.TrimSpace(body))
	if len(fields) == 0 {
		return SlashCommand{Kind: CommandUnknown}
	}

	var args []string
	if len(fields) > 1 {
		args = fields[1:]
	}

	switch strings.ToLower(fields[0]) {
	case "/summarize":
		return SlashCommand{Kind: CommandSummarize}
	case "/review":
		return SlashCommand{Kind: CommandReview}
	case "/labels":
		return SlashCommand{Kind: CommandLabels, Args: args}
	case "/assign":
		return SlashCommand{Kind: CommandAssign, Args: args}
	default:
		return SlashCommand{Kind: CommandUnknown}
	}
}
