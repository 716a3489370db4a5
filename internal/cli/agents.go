package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sasanktumpati/delegate/internal/agents"
	"github.com/sasanktumpati/delegate/internal/config"
)

const summaryLen = 60

func (a *App) agentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List agent roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.agentList()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print the system prompt of an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.agentShow(args[0])
		},
	})
	return cmd
}

func (a *App) agentList() error {
	s, err := a.loadSettings()
	if err != nil {
		return err
	}
	defaultID := choose(false, "", s.cfg.DefaultAgent, config.DefaultAgent)

	tw := tabwriter.NewWriter(a.stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "DEFAULT\tAGENT\tPROMPT")
	for _, name := range s.agents.Names() {
		marker := ""
		if name == defaultID {
			marker = "*"
		}
		prompt, _ := s.agents.Lookup(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, name, summarize(prompt, summaryLen))
	}
	return tw.Flush()
}

func (a *App) agentShow(id string) error {
	s, err := a.loadSettings()
	if err != nil {
		return err
	}
	prompt, found := s.agents.Lookup(id)
	if !found {
		a.logger.Warn("agent %q not defined; showing %s", id, agents.Default)
	}
	fmt.Fprintln(a.stdout, prompt)
	return nil
}

// summarize returns the first line of s, shortened to n runes.
func summarize(s string, n int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	r := []rune(line)
	if len(r) <= n {
		return line
	}
	return string(r[:n-3]) + "..."
}
