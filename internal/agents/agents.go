// Package agents maps agent roles to system prompts and composes the user
// prompt sent alongside them.
package agents

import (
	"sort"
	"strings"
)

// Default is the agent used when a lookup misses. It always exists.
const Default = "general-reviewer"

var builtinPrompts = map[string]string{
	"architect": `You are a senior software architect. Analyze the design and provide:
- Architecture assessment
- Potential issues
- Recommendations
Be concise and actionable.`,

	"code-reviewer": `You are a code reviewer. Evaluate code quality on a 7-point scale:
1. Readability
2. Maintainability
3. Performance
4. Security
5. Test coverage
6. Error handling
7. Best practices
Provide specific, actionable feedback.`,

	"security-analyst": `You are a security analyst. Check for:
- OWASP Top 10 vulnerabilities
- Authentication/authorization issues
- Input validation gaps
- Secret exposure risks
Score security on a 3-point scale (0-3). Be specific about findings.`,

	"scope-analyst": `You are a requirements analyst. Evaluate:
- Scope clarity
- Edge cases
- Feasibility
- Risks
Provide structured analysis.`,

	"plan-reviewer": `You are a plan reviewer. Assess:
- Completeness
- Feasibility
- Risk identification
- Priority ordering
Score the plan and suggest improvements.`,

	"general-reviewer": `You are a general-purpose reviewer. Provide clear,
concise analysis of the given task. Focus on actionable insights.`,

	"math-reasoning": `You are a math and logic specialist. Verify calculations,
algorithms, and logical reasoning. Show your work step by step.`,
}

// Table is an immutable agent id to system prompt mapping.
type Table struct {
	prompts map[string]string
}

// Builtin returns the built-in agent table.
func Builtin() *Table {
	return &Table{prompts: copyPrompts(builtinPrompts)}
}

// With returns a copy of t with extra prompts added or replaced. Blank ids
// and blank prompts are skipped so the default agent cannot be erased.
func (t *Table) With(extra map[string]string) *Table {
	prompts := copyPrompts(t.prompts)
	for id, prompt := range extra {
		id = strings.TrimSpace(id)
		prompt = strings.TrimSpace(prompt)
		if id == "" || prompt == "" {
			continue
		}
		prompts[id] = prompt
	}
	return &Table{prompts: prompts}
}

// Lookup returns the prompt registered under exactly id, falling back to
// the Default agent. found is false when the fallback was used.
func (t *Table) Lookup(id string) (prompt string, found bool) {
	if p, ok := t.prompts[id]; ok {
		return p, true
	}
	return t.prompts[Default], false
}

// Names returns agent ids, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.prompts))
	for id := range t.prompts {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// UserPrompt composes the user message for task. The file path is only
// referenced by name; its content is not read.
func UserPrompt(task, file string) string {
	prompt := "TASK: " + task
	if file != "" {
		prompt += "\nFILE: " + file
	}
	return prompt
}

func copyPrompts(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
