package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinOrder(t *testing.T) {
	assert.Equal(t, []string{"codex", "glm", "gemini"}, Builtin().IDs())
}

func TestBuiltinProvidersValidate(t *testing.T) {
	for _, p := range Builtin().All() {
		require.NoError(t, p.Validate(), p.ID)
		assert.NotEmpty(t, p.EnvKey, p.ID)
		assert.NotEmpty(t, p.Endpoint, p.ID)
	}
}

func TestLookupUnknownProvider(t *testing.T) {
	_, err := Builtin().Lookup("unknown-provider")
	require.Error(t, err)

	var unknown *UnknownProviderError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "unknown-provider", unknown.ID)
	assert.Equal(t, []string{"codex", "glm", "gemini"}, unknown.Available)
}

func TestLookupIsExact(t *testing.T) {
	r := Builtin()
	for _, id := range []string{"CODEX", "Glm", " gemini", "codex "} {
		_, err := r.Lookup(id)
		var unknown *UnknownProviderError
		require.True(t, errors.As(err, &unknown), id)
		assert.Equal(t, id, unknown.ID)
	}
}

func TestGeminiURLExpandsModel(t *testing.T) {
	p, err := Builtin().Lookup("gemini")
	require.NoError(t, err)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent", p.URL())
}

func TestOverrideMergesBuiltin(t *testing.T) {
	r := Builtin()
	require.NoError(t, r.Override(Provider{ID: "codex", Model: "gpt-4o-mini"}))

	p, err := r.Lookup("codex")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.Model)
	assert.Equal(t, "OPENAI_API_KEY", p.EnvKey)
	assert.Equal(t, "Codex (OpenAI)", p.Name)
	assert.Equal(t, []string{"codex", "glm", "gemini"}, r.IDs())
}

func TestOverrideAddsCustomProvider(t *testing.T) {
	r := Builtin()
	err := r.Override(Provider{
		ID:       "Groq",
		EnvKey:   "GROQ_API_KEY",
		Endpoint: "https://api.groq.com/openai/v1/chat/completions",
		Model:    "llama-3.3-70b",
		Family:   FamilyChatCompletions,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"codex", "glm", "gemini", "Groq"}, r.IDs())
	p, err := r.Lookup("Groq")
	require.NoError(t, err)
	assert.Equal(t, "Groq", p.Name)
}

func TestOverrideRejectsIncompleteCustomProvider(t *testing.T) {
	r := Builtin()
	err := r.Override(Provider{ID: "partial", Model: "m", Family: FamilyChatCompletions})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env key is required")

	_, lookupErr := r.Lookup("partial")
	assert.Error(t, lookupErr)
}

func TestOverrideRejectsUnknownFamily(t *testing.T) {
	err := Builtin().Override(Provider{
		ID:       "odd",
		EnvKey:   "ODD_KEY",
		Endpoint: "https://odd.example.com",
		Model:    "m",
		Family:   "carrier-pigeon",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported family")
}

func TestCredential(t *testing.T) {
	p, err := Builtin().Lookup("codex")
	require.NoError(t, err)

	env := map[string]string{"OPENAI_API_KEY": " sk-x "}
	key, err := p.Credential(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)
	assert.Equal(t, "sk-x", key)

	env["OPENAI_API_KEY"] = ""
	_, err = p.Credential(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	var missing *MissingCredentialError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "OPENAI_API_KEY", missing.EnvKey)
}

func TestSupportsThinking(t *testing.T) {
	r := Builtin()
	for id, want := range map[string]bool{"codex": false, "glm": true, "gemini": false} {
		p, err := r.Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, want, p.SupportsThinking(), id)
	}
}
