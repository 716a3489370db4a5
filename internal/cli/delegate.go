package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasanktumpati/delegate/internal/agents"
	"github.com/sasanktumpati/delegate/internal/config"
	"github.com/sasanktumpati/delegate/internal/logging"
	"github.com/sasanktumpati/delegate/internal/providers"
	"github.com/sasanktumpati/delegate/internal/render"
	"github.com/sasanktumpati/delegate/internal/taskedit"
)

const taskPreviewLen = 80

type delegateOptions struct {
	Agent       string
	Task        string
	File        string
	Provider    string
	Thinking    bool
	Timeout     time.Duration
	JSON        bool
	NoMarkdown  bool
	Copy        bool
	Interactive bool
}

// delegateResult is the --json output shape.
type delegateResult struct {
	Provider       string  `json:"provider"`
	ProviderName   string  `json:"provider_name"`
	Model          string  `json:"model"`
	Agent          string  `json:"agent"`
	Task           string  `json:"task"`
	File           string  `json:"file,omitempty"`
	Answer         string  `json:"answer"`
	Fallback       bool    `json:"fallback"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

func (a *App) runDelegate(cmd *cobra.Command, opts delegateOptions) error {
	task := opts.Task
	if opts.Interactive {
		edited, err := a.editTask(taskedit.Options{
			Initial: task,
			Stdin:   a.stdin,
			Stdout:  a.stderr,
			Stderr:  a.stderr,
		})
		if err != nil {
			if errors.Is(err, taskedit.ErrCancelled) {
				return usageError("%v", err)
			}
			return err
		}
		task = edited
	}
	if strings.TrimSpace(task) == "" {
		return usageError("--task (-t) is required")
	}

	s, err := a.loadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	providerID := choose(flags.Changed("provider"), opts.Provider, s.cfg.DefaultProvider, config.DefaultProvider)
	provider, err := s.providers.Lookup(providerID)
	if err != nil {
		return err
	}

	env, err := a.loadEnv()
	if err != nil {
		return err
	}
	apiKey, err := provider.Credential(env.Lookup)
	if err != nil {
		return err
	}
	a.logger.Debug("using %s from %s", provider.EnvKey, env.Source(provider.EnvKey))

	agentID := choose(flags.Changed("agent"), opts.Agent, s.cfg.DefaultAgent, config.DefaultAgent)
	systemPrompt, found := s.agents.Lookup(agentID)
	if !found {
		a.logger.Debug("agent %q not defined; using %s prompt", agentID, agents.Default)
	}

	timeout := s.cfg.CallTimeout()
	if flags.Changed("timeout") {
		timeout = opts.Timeout
	}

	if !opts.JSON {
		a.printHeader(provider, agentID, task)
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client := providers.NewClient(providers.ClientOptions{
		HTTPClient: a.httpClient,
		Logger:     logging.With(a.logger, provider.ID),
	})
	req := providers.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   agents.UserPrompt(task, opts.File),
		Thinking:     opts.Thinking,
	}

	started := a.now()
	stop := startSpinner(!opts.JSON && isTerminalWriter(a.stderr), a.stderr, "Waiting for "+provider.Name)
	resp, err := client.Send(ctx, provider, apiKey, req)
	stop()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s did not answer within %s: %w", provider.Name, timeout, err)
		}
		return err
	}
	elapsed := a.now().Sub(started)

	if opts.JSON {
		if err := a.printJSON(delegateResult{
			Provider:       provider.ID,
			ProviderName:   provider.Name,
			Model:          provider.Model,
			Agent:          agentID,
			Task:           task,
			File:           opts.File,
			Answer:         resp.Text,
			Fallback:       resp.Fallback,
			ElapsedSeconds: roundTenths(elapsed),
		}); err != nil {
			return err
		}
	} else {
		markdown := s.cfg.Markdown() && !opts.NoMarkdown && isTerminalWriter(a.stdout)
		answer := render.Answer(resp.Text, render.Options{
			Markdown: markdown,
			Width:    terminalWidth(a.stdout),
			Style:    s.cfg.MarkdownStyle,
		})
		fmt.Fprintf(a.stdout, "\n%s\n", answer)
		fmt.Fprintf(a.stdout, "\n  Processing time: %.1fs\n", elapsed.Seconds())
	}

	if opts.Copy {
		if err := a.copyText(resp.Text); err != nil {
			a.logger.Warn("copy to clipboard failed: %v", err)
		} else {
			fmt.Fprintln(a.stderr, "  Answer copied to clipboard.")
		}
	}
	return nil
}

func (a *App) printHeader(p providers.Provider, agentID string, task string) {
	label := color.New(color.Bold)
	if !isTerminalWriter(a.stdout) {
		label.DisableColor()
	}
	fmt.Fprintf(a.stdout, "\n  %s\n", label.Sprintf("Delegating to %s (%s)...", p.Name, agentID))
	fmt.Fprintf(a.stdout, "  Model: %s\n", p.Model)
	fmt.Fprintf(a.stdout, "  Task: %s...\n", preview(task, taskPreviewLen))
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// choose picks an explicit flag value, then the configured value, then
// fallback. An explicit empty flag selects fallback; other values are kept
// verbatim.
func choose(flagSet bool, flagValue string, configured string, fallback string) string {
	if flagSet {
		if flagValue != "" {
			return flagValue
		}
		return fallback
	}
	if configured != "" {
		return configured
	}
	return fallback
}

// preview returns the first n characters of s.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func roundTenths(d time.Duration) float64 {
	return float64(d.Round(100*time.Millisecond).Milliseconds()) / 1000
}
