package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sasanktumpati/delegate/internal/agents"
	"github.com/sasanktumpati/delegate/internal/clipboard"
	"github.com/sasanktumpati/delegate/internal/config"
	"github.com/sasanktumpati/delegate/internal/logging"
	"github.com/sasanktumpati/delegate/internal/providers"
	"github.com/sasanktumpati/delegate/internal/taskedit"
)

const version = "0.1.0"

// App encapsulates CLI runtime dependencies.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	lookupEnv  func(string) (string, bool)
	httpClient *http.Client
	now        func() time.Time
	editTask   func(taskedit.Options) (string, error)
	copyText   func(string) error

	global globalOptions
	logger logging.Logger
}

type globalOptions struct {
	ConfigPath string
	EnvFile    string
	Verbose    bool
}

// settings is the configuration resolved for one invocation.
type settings struct {
	path      string
	cfg       *config.Config
	providers *providers.Registry
	agents    *agents.Table
}

// Run executes the delegate CLI with the provided process arguments and streams.
func Run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	return newApp(stdin, stdout, stderr).execute(context.Background(), args)
}

func newApp(stdin io.Reader, stdout io.Writer, stderr io.Writer) *App {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &App{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		lookupEnv: os.LookupEnv,
		now:       time.Now,
		editTask:  taskedit.Edit,
		copyText:  clipboard.Copy,
		logger:    logging.Nop(),
	}
}

func (a *App) execute(ctx context.Context, args []string) error {
	if args == nil {
		args = []string{}
	}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	opts := delegateOptions{}
	root := &cobra.Command{
		Use:   "delegate -t <task> [-a agent] [-p provider] [-f file]",
		Short: "Delegate a task to an LLM provider under an agent role",
		Long: `delegate sends one task to a large-language-model API and prints the answer.

The agent selects the system prompt; the provider selects the API:
  codex   OpenAI chat completions (OPENAI_API_KEY)
  glm     Z.ai GLM chat completions (GLM_API_KEY)
  gemini  Google Gemini generateContent (GEMINI_API_KEY)`,
		Example: `  delegate -a architect -t "Design the auth system" -f src/auth.ts
  delegate -p gemini -a security-analyst -t "Review the login flow"
  delegate -p glm --thinking -a math-reasoning -t "Check this proof"`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDelegate(cmd, opts)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.global.ConfigPath, "config", "", "config file (default $DELEGATE_CONFIG or ~/.delegate/config.yaml)")
	pf.StringVar(&a.global.EnvFile, "env-file", config.DefaultEnvFile, "dotenv file consulted for missing API keys")
	pf.BoolVarP(&a.global.Verbose, "verbose", "v", false, "enable debug logging on stderr")

	f := root.Flags()
	f.StringVarP(&opts.Agent, "agent", "a", config.DefaultAgent, "agent role selecting the system prompt")
	f.StringVarP(&opts.Task, "task", "t", "", "task description (required)")
	f.StringVarP(&opts.File, "file", "f", "", "file path referenced in the prompt (content is not read)")
	f.StringVarP(&opts.Provider, "provider", "p", config.DefaultProvider, "provider: codex, glm or gemini")
	f.BoolVar(&opts.Thinking, "thinking", false, "request extended reasoning where the provider supports it")
	f.DurationVar(&opts.Timeout, "timeout", config.DefaultTimeout, "deadline for the provider call (0 disables)")
	f.BoolVar(&opts.JSON, "json", false, "print the result as JSON")
	f.BoolVar(&opts.NoMarkdown, "no-markdown", false, "print the answer without markdown rendering")
	f.BoolVar(&opts.Copy, "copy", false, "copy the answer to the clipboard")
	f.BoolVarP(&opts.Interactive, "interactive", "i", false, "edit the task in a prompt before sending")

	root.AddCommand(
		a.providersCommand(),
		a.agentsCommand(),
		a.configCommand(),
		versionCommand(),
	)
	return root
}

func (a *App) setupLogger() {
	level := logging.LevelWarn
	if a.global.Verbose {
		level = logging.LevelDebug
	}
	a.logger = logging.New(a.stderr, logging.Options{
		Min:   level,
		Color: isTerminalWriter(a.stderr),
	})
}

// loadSettings reads the config file and layers it over the built-in
// provider and agent tables. A missing config file is not an error.
func (a *App) loadSettings() (*settings, error) {
	path, err := config.ResolvePath(a.global.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, err
	}
	if err == nil {
		a.logger.Debug("loaded config %s", path)
	}

	registry := providers.Builtin()
	for _, id := range cfg.ProviderIDs() {
		o := cfg.Providers[id]
		if err := registry.Override(providers.Provider{
			ID:       id,
			Name:     o.Name,
			EnvKey:   o.APIKeyEnv,
			Endpoint: o.Endpoint,
			Model:    o.Model,
			Family:   providers.Family(o.Family),
		}); err != nil {
			return nil, fmt.Errorf("config %s: providers.%s: %w", path, id, err)
		}
	}

	return &settings{
		path:      path,
		cfg:       cfg,
		providers: registry,
		agents:    agents.Builtin().With(cfg.Agents),
	}, nil
}

func (a *App) loadEnv() (*config.Env, error) {
	explicit := a.global.EnvFile != config.DefaultEnvFile
	return config.LoadEnv(a.global.EnvFile, explicit, a.lookupEnv)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the delegate version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
