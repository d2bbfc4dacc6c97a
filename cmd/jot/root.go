package main

import (
	"github.com/spf13/cobra"

	"jot/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		output   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "jot",
		Short: "Jot is a Jira client for sprints, boards and work logs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputMode(output); err != nil {
				return err
			}
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				cmd.PrintErrln(warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newLoginCmd(cfg),
		newLogoutCmd(cfg),
		newBacklogCmd(cfg, &output),
		newBoardCmd(cfg, &output),
		newWorklogCmd(cfg, &output),
		newLogCmd(cfg, &output),
		newConfigCmd(cfg),
	)

	return cmd
}
