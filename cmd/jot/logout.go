package main

import (
	"os"

	"github.com/spf13/cobra"

	"jot/internal/config"
	"jot/internal/credstore"
	"jot/internal/ui"
)

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored Jira credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credstore.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			_, found, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if !found {
				return nil
			}

			if !silent {
				confirmed, err := ui.NewPrompter(os.Stdin, os.Stderr).Confirm("Remove stored credentials?")
				if err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			return writePlain("logged out\n")
		},
	}

	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "skip confirmation")

	return cmd
}
