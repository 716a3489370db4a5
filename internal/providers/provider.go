package providers

import (
	"fmt"
	"sort"
	"strings"
)

// Family identifies the wire contract spoken by a provider endpoint.
type Family string

const (
	// FamilyChatCompletions is the OpenAI-style chat/completions contract.
	FamilyChatCompletions Family = "chat-completions"
	// FamilyGenerateContent is the Gemini generateContent contract.
	FamilyGenerateContent Family = "generate-content"
)

const modelPlaceholder = "{model}"

// Provider describes one delegation target.
type Provider struct {
	ID       string
	Name     string
	EnvKey   string
	Endpoint string
	Model    string
	Family   Family
}

var builtinProviders = []Provider{
	{
		ID:       "codex",
		Name:     "Codex (OpenAI)",
		EnvKey:   "OPENAI_API_KEY",
		Endpoint: "https://api.openai.com/v1/chat/completions",
		Model:    "gpt-4o",
		Family:   FamilyChatCompletions,
	},
	{
		ID:       "glm",
		Name:     "GLM-4.7 (Z.ai)",
		EnvKey:   "GLM_API_KEY",
		Endpoint: "https://open.z.ai/api/paas/v4/chat/completions",
		Model:    "glm-4.7",
		Family:   FamilyChatCompletions,
	},
	{
		ID:       "gemini",
		Name:     "Gemini (Google)",
		EnvKey:   "GEMINI_API_KEY",
		Endpoint: "https://generativelanguage.googleapis.com/v1beta/models/{model}:generateContent",
		Model:    "gemini-2.0-flash",
		Family:   FamilyGenerateContent,
	},
}

// Validate checks that the provider can be dispatched to.
func (p Provider) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("provider id is required")
	}
	if strings.TrimSpace(p.EnvKey) == "" {
		return fmt.Errorf("provider %q: env key is required", p.ID)
	}
	if strings.TrimSpace(p.Endpoint) == "" {
		return fmt.Errorf("provider %q: endpoint is required", p.ID)
	}
	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("provider %q: model is required", p.ID)
	}
	if _, ok := families[p.Family]; !ok {
		return fmt.Errorf("provider %q: unsupported family %q (supported: %s)", p.ID, p.Family, strings.Join(FamilyNames(), ", "))
	}
	return nil
}

// URL returns the endpoint with the model placeholder expanded.
func (p Provider) URL() string {
	return strings.ReplaceAll(strings.TrimSpace(p.Endpoint), modelPlaceholder, p.Model)
}

// SupportsThinking reports whether the provider's wire contract can carry
// an extended-reasoning toggle.
func (p Provider) SupportsThinking() bool {
	w, ok := families[p.Family]
	return ok && w.supportsThinking(p)
}

// Credential resolves the provider API key through lookup.
func (p Provider) Credential(lookup func(string) (string, bool)) (string, error) {
	if lookup != nil {
		if v, ok := lookup(p.EnvKey); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", &MissingCredentialError{Provider: p.ID, EnvKey: p.EnvKey}
}

// FamilyNames returns the supported wire family names, sorted.
func FamilyNames() []string {
	names := make([]string, 0, len(families))
	for f := range families {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Registry is an ordered provider table keyed by id.
type Registry struct {
	order []string
	byID  map[string]Provider
}

// Builtin returns a registry holding the built-in providers in their
// canonical order: codex, glm, gemini.
func Builtin() *Registry {
	r := &Registry{byID: map[string]Provider{}}
	for _, p := range builtinProviders {
		r.order = append(r.order, p.ID)
		r.byID[p.ID] = p
	}
	return r
}

// Override merges non-empty fields of p onto the provider with the same id.
// Unknown ids register a new provider, which must then validate on its own.
func (r *Registry) Override(p Provider) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return fmt.Errorf("provider id is required")
	}

	merged, exists := r.byID[id]
	if !exists {
		merged = Provider{ID: id, Name: id}
	}
	if v := strings.TrimSpace(p.Name); v != "" {
		merged.Name = v
	}
	if v := strings.TrimSpace(p.EnvKey); v != "" {
		merged.EnvKey = v
	}
	if v := strings.TrimSpace(p.Endpoint); v != "" {
		merged.Endpoint = v
	}
	if v := strings.TrimSpace(p.Model); v != "" {
		merged.Model = v
	}
	if p.Family != "" {
		merged.Family = Family(normalize(string(p.Family)))
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	if !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = merged
	return nil
}

// Lookup returns the provider registered under exactly id.
func (r *Registry) Lookup(id string) (Provider, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return Provider{}, &UnknownProviderError{ID: id, Available: r.IDs()}
}

// IDs returns provider ids in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// All returns providers in registry order.
func (r *Registry) All() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
