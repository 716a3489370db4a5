package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinHasDocumentedAgents(t *testing.T) {
	want := []string{
		"architect",
		"code-reviewer",
		"general-reviewer",
		"math-reasoning",
		"plan-reviewer",
		"scope-analyst",
		"security-analyst",
	}
	assert.Equal(t, want, Builtin().Names())
}

func TestLookupKnownAgent(t *testing.T) {
	prompt, found := Builtin().Lookup("security-analyst")
	require.True(t, found)
	assert.Contains(t, prompt, "OWASP Top 10")
}

func TestLookupFallsBackToGeneralReviewer(t *testing.T) {
	table := Builtin()
	general, ok := table.Lookup(Default)
	require.True(t, ok)

	for _, id := range []string{"", "nope", "ARCHITECT", " architect", "Code-Reviewer", "code_reviewer"} {
		prompt, found := table.Lookup(id)
		assert.False(t, found, id)
		assert.Equal(t, general, prompt, id)
	}
}

func TestWithAddsAndReplaces(t *testing.T) {
	base := Builtin()
	table := base.With(map[string]string{
		"Docs-Writer":      "  You write docs.  ",
		"architect":        "Custom architect.",
		"general-reviewer": "   ",
		"":                 "ignored",
	})

	prompt, found := table.Lookup("Docs-Writer")
	require.True(t, found)
	assert.Equal(t, "You write docs.", prompt)

	_, found = table.Lookup("docs-writer")
	assert.False(t, found)

	prompt, _ = table.Lookup("architect")
	assert.Equal(t, "Custom architect.", prompt)

	prompt, found = table.Lookup(Default)
	require.True(t, found)
	assert.Contains(t, prompt, "general-purpose reviewer")

	builtin, _ := base.Lookup("architect")
	assert.Contains(t, builtin, "senior software architect")
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "TASK: review auth.ts", UserPrompt("review auth.ts", ""))
	assert.Equal(t, "TASK: review\nFILE: src/auth.ts", UserPrompt("review", "src/auth.ts"))
}
