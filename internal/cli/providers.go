package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sasanktumpati/delegate/internal/config"
)

func (a *App) providersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List providers and whether their API key is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.providerList()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one provider as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.providerShow(args[0])
		},
	})
	return cmd
}

func (a *App) providerList() error {
	s, err := a.loadSettings()
	if err != nil {
		return err
	}
	env, err := a.loadEnv()
	if err != nil {
		return err
	}

	defaultID := choose(false, "", s.cfg.DefaultProvider, config.DefaultProvider)
	tw := tabwriter.NewWriter(a.stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "DEFAULT\tID\tNAME\tMODEL\tKEY\tSOURCE")
	for _, p := range s.providers.All() {
		marker := ""
		if p.ID == defaultID {
			marker = "*"
		}
		source := env.Source(p.EnvKey)
		status := "set"
		if source == "" {
			status = "missing"
			source = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %s\t%s\n", marker, p.ID, p.Name, p.Model, p.EnvKey, status, source)
	}
	return tw.Flush()
}

func (a *App) providerShow(id string) error {
	s, err := a.loadSettings()
	if err != nil {
		return err
	}
	p, err := s.providers.Lookup(id)
	if err != nil {
		return err
	}
	env, err := a.loadEnv()
	if err != nil {
		return err
	}

	type providerView struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Family    string `json:"family"`
		Endpoint  string `json:"endpoint"`
		Model     string `json:"model"`
		APIKeyEnv string `json:"api_key_env"`
		HasAPIKey bool   `json:"has_api_key"`
		Thinking  bool   `json:"thinking"`
	}

	view := providerView{
		ID:        p.ID,
		Name:      p.Name,
		Family:    string(p.Family),
		Endpoint:  p.URL(),
		Model:     p.Model,
		APIKeyEnv: p.EnvKey,
		HasAPIKey: env.Source(p.EnvKey) != "",
		Thinking:  p.SupportsThinking(),
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
