package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/github"
)

func TestSummaryPrompt(t *testing.T) {
	prompt := SummaryPrompt("Fix crash", "https://github.com/octocat/widgets/pull/42")

	assert.Contains(t, prompt, "Fix crash")
	assert.Contains(t, prompt, "https://github.com/octocat/widgets/pull/42")
	assert.NotContains(t, prompt, "<<DIFF>>", "summary prompt carries no file data")
}

func TestReviewPrompt(t *testing.T) {
	makeFiles := func(n int) []github.ChangedFile {
		files := make([]github.ChangedFile, n)
		for i := range files {
			files[i] = github.ChangedFile{
				Filename: fmt.Sprintf("file%d.go", i),
				Patch:    fmt.Sprintf("@@ patch %d @@", i),
				Content:  fmt.Sprintf("package file%d", i),
			}
		}
		return files
	}

	t.Run("empty file list still produces a well-formed prompt", func(t *testing.T) {
		prompt := ReviewPrompt(nil)
		assert.Contains(t, prompt, "<<DIFF>>")
		assert.Contains(t, prompt, "<<FILES>>")
		assert.Contains(t, prompt, "<<END>>")
	})

	t.Run("exactly three files are all included", func(t *testing.T) {
		prompt := ReviewPrompt(makeFiles(3))
		for i := range 3 {
			assert.Contains(t, prompt, fmt.Sprintf("file%d.go", i))
		}
	})

	t.Run("fourth file is dropped", func(t *testing.T) {
		prompt := ReviewPrompt(makeFiles(4))
		for i := range 3 {
			assert.Contains(t, prompt, fmt.Sprintf("file%d.go", i))
		}
		assert.NotContains(t, prompt, "file3.go")
	})

	t.Run("patch capped to twenty lines", func(t *testing.T) {
		lines := make([]string, 30)
		for i := range lines {
			lines[i] = fmt.Sprintf("line-%02d", i)
		}
		prompt := ReviewPrompt([]github.ChangedFile{{
			Filename: "big.go",
			Patch:    strings.Join(lines, "\n"),
		}})
		assert.Contains(t, prompt, "line-19")
		assert.NotContains(t, prompt, "line-20")
	})

	t.Run("content capped to two thousand characters", func(t *testing.T) {
		content := strings.Repeat("a", 2000) + "OVERFLOW"
		prompt := ReviewPrompt([]github.ChangedFile{{
			Filename: "big.go",
			Content:  content,
		}})
		assert.NotContains(t, prompt, "OVERFLOW")
		assert.Contains(t, prompt, strings.Repeat("a", 2000))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		files := makeFiles(2)
		assert.Equal(t, ReviewPrompt(files), ReviewPrompt(files))
	})
}

func TestLabelPrompt(t *testing.T) {
	prompt := LabelPrompt("Fix crash", "Null pointer on startup", []string{"a.ts", "b.ts"})

	for _, label := range LabelVocabulary {
		assert.Contains(t, prompt, label)
	}
	assert.Contains(t, prompt, "Fix crash")
	assert.Contains(t, prompt, "Null pointer on startup")
	assert.Contains(t, prompt, "a.ts, b.ts")
	assert.Contains(t, prompt, "comma-separated")
}
