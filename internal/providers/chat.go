package providers

import (
	"net/http"
	"strings"
)

const chatTemperature = 0.2

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatThinking struct {
	Type string `json:"type"`
}

type chatPayload struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Thinking    *chatThinking `json:"thinking,omitempty"`
}

// chatCompletions speaks the OpenAI chat/completions contract used by codex
// and glm. The key travels in the Authorization header only.
type chatCompletions struct{}

func (chatCompletions) payload(p Provider, req Request) any {
	body := chatPayload{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: chatTemperature,
	}
	if req.Thinking && (chatCompletions{}).supportsThinking(p) {
		body.Thinking = &chatThinking{Type: "enabled"}
	}
	return body
}

func (chatCompletions) authorize(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

func (chatCompletions) extract(doc any) string {
	content, ok := probe(doc, "choices", 0, "message", "content")
	if !ok {
		return ""
	}
	return contentText(content)
}

// Only GLM models accept the thinking block on this contract.
func (chatCompletions) supportsThinking(p Provider) bool {
	return strings.HasPrefix(normalize(p.Model), "glm")
}
