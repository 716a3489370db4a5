package providers

import "net/http"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPayload struct {
	Contents []geminiContent `json:"contents"`
}

// generateContent speaks the Gemini generateContent contract. The key is a
// query parameter and no Authorization header is sent. Only the user prompt
// is transmitted.
type generateContent struct{}

func (generateContent) payload(_ Provider, req Request) any {
	return geminiPayload{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.UserPrompt}}}},
	}
}

func (generateContent) authorize(req *http.Request, apiKey string) {
	q := req.URL.Query()
	q.Set("key", apiKey)
	req.URL.RawQuery = q.Encode()
}

func (generateContent) extract(doc any) string {
	return probeString(doc, "candidates", 0, "content", "parts", 0, "text")
}

func (generateContent) supportsThinking(Provider) bool { return false }
