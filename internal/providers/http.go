package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sasanktumpati/delegate/internal/logging"
)

// NoResponse is the answer reported when the expected response path is absent.
const NoResponse = "No response"

// DefaultMaxResponseBytes caps how much of a provider response is read.
const DefaultMaxResponseBytes int64 = 4 << 20

// Request is the normalized prompt pair sent to a provider.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Thinking     bool
}

// Response is the answer extracted from a provider reply.
type Response struct {
	Text string
	// Fallback is set when the reply lacked the expected text path.
	Fallback bool
}

// wire is one provider family: payload builder, auth strategy and response
// extractor.
type wire interface {
	payload(p Provider, req Request) any
	authorize(req *http.Request, apiKey string)
	extract(doc any) string
	supportsThinking(p Provider) bool
}

var families = map[Family]wire{
	FamilyChatCompletions: chatCompletions{},
	FamilyGenerateContent: generateContent{},
}

// ClientOptions configures a Client.
type ClientOptions struct {
	HTTPClient       *http.Client
	Logger           logging.Logger
	MaxResponseBytes int64
}

// Client issues single delegation calls.
type Client struct {
	http    *http.Client
	logger  logging.Logger
	maxBody int64
}

// NewClient returns a Client. Deadlines come from the caller's context.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	maxBody := opts.MaxResponseBytes
	if maxBody == 0 {
		maxBody = DefaultMaxResponseBytes
	}
	return &Client{
		http:    httpClient,
		logger:  logging.OrNop(opts.Logger),
		maxBody: maxBody,
	}
}

// encodePayload renders the request body for p. HTML characters are left
// unescaped so the body matches the provider's documented shape byte for byte.
func encodePayload(p Provider, req Request) ([]byte, error) {
	w, ok := families[p.Family]
	if !ok {
		return nil, fmt.Errorf("provider %q: unsupported family %q", p.ID, p.Family)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w.payload(p, req)); err != nil {
		return nil, fmt.Errorf("encode request JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Send performs exactly one POST to the provider and extracts the answer.
func (c *Client) Send(ctx context.Context, p Provider, apiKey string, req Request) (Response, error) {
	if err := p.Validate(); err != nil {
		return Response{}, err
	}
	w := families[p.Family]
	if req.Thinking && !w.supportsThinking(p) {
		c.logger.Debug("provider %s does not support thinking; flag ignored", p.ID)
	}

	buf, err := encodePayload(p, req)
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL(), bytes.NewReader(buf))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	w.authorize(httpReq, apiKey)

	c.logger.Debug("POST %s (provider=%s model=%s bytes=%d)", redactedURL(httpReq), p.ID, p.Model, len(buf))

	doc, err := c.doJSON(httpReq, p)
	if err != nil {
		return Response{}, err
	}

	text := w.extract(doc)
	if text == "" {
		c.logger.Warn("%s response had no text at the expected path", p.ID)
		return Response{Text: NoResponse, Fallback: true}, nil
	}
	return Response{Text: text}, nil
}

func (c *Client) doJSON(req *http.Request, p Provider) (any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readAllWithLimit(resp.Body, c.maxBody)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("%s answered %s (%d bytes)", p.ID, resp.Status, len(body))

	// JSON error bodies still go through extraction.
	if resp.StatusCode >= 400 {
		c.logger.Warn("%s answered %s: %s", p.ID, resp.Status, truncate(strings.TrimSpace(string(body)), 200))
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response JSON (%s): %w; body=%s", resp.Status, err, truncate(string(body), 700))
	}
	return doc, nil
}

func readAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(&io.LimitedReader{R: r, N: limit + 1})
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ResponseTooLargeError{Limit: limit}
	}
	return data, nil
}

func redactedURL(req *http.Request) string {
	u := *req.URL
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
