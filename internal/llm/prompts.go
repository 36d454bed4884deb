package llm

import (
	"fmt"
	"strings"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/github"
)

// Truncation limits applied before any prompt leaves this package. They bound
// the request size no matter how large the underlying change set is.
const (
	// MaxPromptFiles is the most changed files a single prompt may embed.
	// Callers preparing file data can use it to avoid fetching content that
	// would be dropped here anyway.
	MaxPromptFiles = 3

	maxPatchLines   = 20
	maxContentChars = 2000
)

const sectionSeparator = "\n---\n"

// LabelVocabulary is the closed set of labels the model is asked to choose
// from. Unknown tokens in the answer still pass through parsing and are
// created on the repository by the label reconciler.
var LabelVocabulary = []string{"bug", "enhancement", "docs", "test", "refactor", "frontend", "backend"}

// SummaryPrompt builds an instruction asking for a concise summary of a pull
// request, identified by its title and canonical URL. No file data is
// embedded.
func SummaryPrompt(title, url string) string {
	var sb strings.Builder
	sb.WriteString("You are a code review assistant. Write a concise summary of the following pull request ")
	sb.WriteString("in two or three sentences, suitable for posting as the PR description.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", title)
	fmt.Fprintf(&sb, "URL: %s\n", url)
	return sb.String()
}

// ReviewPrompt builds a commit review instruction from up to MaxPromptFiles
// changed files. Patches are capped to maxPatchLines lines and file contents to
// maxContentChars characters before being embedded.
func ReviewPrompt(files []github.ChangedFile) string {
	if len(files) > MaxPromptFiles {
		files = files[:MaxPromptFiles]
	}

	var diffs []string
	var contents []string
	for _, f := range files {
		if f.Patch != "" {
			diffs = append(diffs, fmt.Sprintf("File: %s\n%s", f.Filename, truncateLines(f.Patch, maxPatchLines)))
		}
		if f.Content != "" {
			contents = append(contents, fmt.Sprintf("File: %s\n%s", f.Filename, truncateChars(f.Content, maxContentChars)))
		}
	}

	var sb strings.Builder
	sb.WriteString("You are a code review assistant. Review the following commit and respond with:\n")
	sb.WriteString("- 2-3 bullet points describing the intent of the changes\n")
	sb.WriteString("- improvement notes for each file\n")
	sb.WriteString("- explicit callouts for bugs, missing functionality, or bad practice\n")
	sb.WriteString("- any security, logic, or performance issues\n\n")
	sb.WriteString("<<DIFF>>\n")
	sb.WriteString(strings.Join(diffs, sectionSeparator))
	sb.WriteString("\n<<FILES>>\n")
	sb.WriteString(strings.Join(contents, sectionSeparator))
	sb.WriteString("\n<<END>>\n")
	return sb.String()
}

// LabelPrompt builds an instruction asking for up to three labels from the
// closed vocabulary, given the PR title, description, and changed filenames.
// The model is told to answer with a comma-separated list only.
func LabelPrompt(title, body string, filenames []string) string {
	var sb strings.Builder
	sb.WriteString("Suggest up to 3 labels for this pull request. ")
	fmt.Fprintf(&sb, "Choose only from: %s.\n", strings.Join(LabelVocabulary, ", "))
	sb.WriteString("Answer with a comma-separated list only, no other text.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", title)
	fmt.Fprintf(&sb, "Description: %s\n", body)
	fmt.Fprintf(&sb, "Changed files: %s\n", strings.Join(filenames, ", "))
	return sb.String()
}

// truncateLines keeps at most n lines of s.
func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// truncateChars keeps at most n characters of s.
func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
