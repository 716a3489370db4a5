package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDirName  = "delegate"
	defaultFileName = "config.yaml"
	envConfigPath   = "DELEGATE_CONFIG"
	envConfigDir    = "DELEGATE_CONFIG_DIR"

	// DefaultProvider is used when neither a flag nor the config names one.
	DefaultProvider = "codex"
	// DefaultAgent is used when neither a flag nor the config names one.
	DefaultAgent = "general-reviewer"
	// DefaultTimeout bounds the single provider call.
	DefaultTimeout = 2 * time.Minute
)

var (
	// ErrConfigNotFound indicates the config file does not exist yet.
	ErrConfigNotFound = errors.New("config file not found")
)

// ProviderOverride adjusts a built-in provider or, with Family set,
// defines a new one.
type ProviderOverride struct {
	Name      string `yaml:"name,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Model     string `yaml:"model,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	Family    string `yaml:"family,omitempty"`
}

// Config is the optional on-disk delegate configuration.
type Config struct {
	DefaultProvider string                      `yaml:"default_provider,omitempty"`
	DefaultAgent    string                      `yaml:"default_agent,omitempty"`
	Timeout         *time.Duration              `yaml:"timeout,omitempty"`
	RenderMarkdown  *bool                       `yaml:"render_markdown,omitempty"`
	MarkdownStyle   string                      `yaml:"markdown_style,omitempty"`
	Providers       map[string]ProviderOverride `yaml:"providers,omitempty"`
	Agents          map[string]string           `yaml:"agents,omitempty"`
}

// ResolvePath resolves config file path from CLI override, environment, or default.
func ResolvePath(pathOverride string) (string, error) {
	if path := strings.TrimSpace(pathOverride); path != "" {
		return filepath.Clean(path), nil
	}
	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		return filepath.Clean(path), nil
	}
	return DefaultPath()
}

// DefaultDir returns the directory holding the default config file.
func DefaultDir() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(envConfigDir)); custom != "" {
		return filepath.Clean(custom), nil
	}

	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}
	return filepath.Join(home, "."+defaultDirName), nil
}

// DefaultPath returns the default full path to config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultFileName), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

// Load reads config from path. When missing, it returns DefaultConfig and ErrConfigNotFound.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), ErrConfigNotFound
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Template returns the starter configuration written by `config init`.
func Template() *Config {
	markdown := true
	timeout := DefaultTimeout
	cfg := &Config{
		DefaultProvider: DefaultProvider,
		DefaultAgent:    DefaultAgent,
		Timeout:         &timeout,
		RenderMarkdown:  &markdown,
		Providers: map[string]ProviderOverride{
			"groq": {
				Name:      "Groq",
				Endpoint:  "https://api.groq.com/openai/v1/chat/completions",
				Model:     "llama-3.3-70b-versatile",
				APIKeyEnv: "GROQ_API_KEY",
				Family:    "chat-completions",
			},
		},
		Agents: map[string]string{
			"docs-writer": "You are a technical writer. Produce concise, accurate documentation for the given task.",
		},
	}
	cfg.normalize()
	return cfg
}

// EnsureTemplate writes Template to path unless a file already exists.
// It reports whether a file was created.
func EnsureTemplate(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, fmt.Errorf("config path is empty")
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := writeSecureYAML(path, Template()); err != nil {
		return false, err
	}
	return true, nil
}

// Markdown reports whether answers should be rendered as markdown.
func (c *Config) Markdown() bool {
	if c.RenderMarkdown == nil {
		return true
	}
	return *c.RenderMarkdown
}

// CallTimeout returns the provider call deadline. Unset means DefaultTimeout;
// an explicit zero disables the deadline.
func (c *Config) CallTimeout() time.Duration {
	if c.Timeout == nil {
		return DefaultTimeout
	}
	return *c.Timeout
}

// ProviderIDs returns the ids of provider overrides, sorted.
func (c *Config) ProviderIDs() []string {
	ids := make([]string, 0, len(c.Providers))
	for id := range c.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Config) normalize() {
	c.DefaultProvider = strings.TrimSpace(c.DefaultProvider)
	c.DefaultAgent = strings.TrimSpace(c.DefaultAgent)
	c.MarkdownStyle = strings.TrimSpace(c.MarkdownStyle)
	if c.Timeout != nil && *c.Timeout < 0 {
		zero := time.Duration(0)
		c.Timeout = &zero
	}

	if len(c.Providers) > 0 {
		providers := make(map[string]ProviderOverride, len(c.Providers))
		for id, p := range c.Providers {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			providers[id] = ProviderOverride{
				Name:      strings.TrimSpace(p.Name),
				Endpoint:  strings.TrimSpace(p.Endpoint),
				Model:     strings.TrimSpace(p.Model),
				APIKeyEnv: strings.TrimSpace(p.APIKeyEnv),
				Family:    strings.ToLower(strings.TrimSpace(p.Family)),
			}
		}
		c.Providers = providers
	}

	if len(c.Agents) > 0 {
		agents := make(map[string]string, len(c.Agents))
		for id, prompt := range c.Agents {
			id = strings.TrimSpace(id)
			prompt = strings.TrimSpace(prompt)
			if id == "" || prompt == "" {
				continue
			}
			agents[id] = prompt
		}
		c.Agents = agents
	}
}

func writeSecureYAML(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("set config file permissions: %w", err)
	}
	return nil
}
