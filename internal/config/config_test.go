package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPathUsesDelegateDirectory(t *testing.T) {
	t.Setenv(envConfigDir, "")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join(".delegate", "config.yaml")), path)
}

func TestResolvePathPrecedence(t *testing.T) {
	t.Setenv(envConfigPath, "/tmp/from-env.yaml")

	path, err := ResolvePath("/tmp/flag.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/flag.yaml"), path)

	path, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/from-env.yaml"), path)

	t.Setenv(envConfigPath, "")
	t.Setenv(envConfigDir, "/tmp/delegate-dir")
	path, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/delegate-dir", "config.yaml"), path)
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.True(t, errors.Is(err, ErrConfigNotFound))
	require.NotNil(t, cfg)
	assert.True(t, cfg.Markdown())
	assert.Nil(t, cfg.Timeout)
	assert.Equal(t, DefaultTimeout, cfg.CallTimeout())
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultProvider)
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
default_provider: " glm "
default_agent: architect
timeout: 45s
render_markdown: false
providers:
  codex:
    model: gpt-4o-mini
  groq:
    endpoint: https://api.groq.com/openai/v1/chat/completions
    model: llama
    api_key_env: GROQ_API_KEY
    family: Chat-Completions
agents:
  " docs-writer ": |
    You write docs.
  empty: "   "
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "glm", cfg.DefaultProvider)
	assert.Equal(t, "architect", cfg.DefaultAgent)
	assert.Equal(t, 45*time.Second, cfg.CallTimeout())
	assert.False(t, cfg.Markdown())
	assert.Equal(t, []string{"codex", "groq"}, cfg.ProviderIDs())
	assert.Equal(t, "gpt-4o-mini", cfg.Providers["codex"].Model)
	assert.Equal(t, "chat-completions", cfg.Providers["groq"].Family)
	assert.Equal(t, map[string]string{"docs-writer": "You write docs."}, cfg.Agents)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defualt_provider: glm\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestLoadKeepsIDCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "default_provider: GLM\nproviders:\n  Groq:\n    model: m\nagents:\n  Docs: Write docs.\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GLM", cfg.DefaultProvider)
	assert.Equal(t, []string{"Groq"}, cfg.ProviderIDs())
	assert.Equal(t, map[string]string{"Docs": "Write docs."}, cfg.Agents)
}

func TestLoadZeroTimeoutDisablesDeadline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: 0s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Timeout)
	assert.Equal(t, time.Duration(0), cfg.CallTimeout())
}

func TestTemplateRoundTrip(t *testing.T) {
	cfg := Template()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	created, err := EnsureTemplate(path)
	require.NoError(t, err)
	require.True(t, created)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestEnsureTemplateCreatesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	created, err := EnsureTemplate(path)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("default_provider: gemini\n"), 0o600))
	created, err = EnsureTemplate(path)
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.DefaultProvider)
}

func TestEncodeWritesDurationAsString(t *testing.T) {
	var buf bytes.Buffer
	timeout := 90 * time.Second
	require.NoError(t, Encode(&buf, &Config{Timeout: &timeout}))
	assert.Equal(t, "timeout: 1m30s\n", buf.String())
}
