package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sasanktumpati/delegate/internal/config"
)

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.configShow()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.ResolvePath(a.global.ConfigPath)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.configShow()
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a starter config file if none exists",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.configInit()
			},
		},
	)
	return cmd
}

func (a *App) configShow() error {
	s, err := a.loadSettings()
	if err != nil {
		return err
	}
	return config.Encode(a.stdout, s.cfg)
}

func (a *App) configInit() error {
	path, err := config.ResolvePath(a.global.ConfigPath)
	if err != nil {
		return err
	}
	created, err := config.EnsureTemplate(path)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(a.stdout, "Created %s\n", path)
	} else {
		fmt.Fprintf(a.stdout, "Config already exists at %s\n", path)
	}
	return nil
}
