package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jot/internal/api"
	"jot/internal/config"
	"jot/internal/credstore"
	"jot/internal/ui"
)

func newLoginCmd(cfg *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Jira credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credstore.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if existing, found, err := store.Load(cmd.Context()); err != nil {
				return err
			} else if found && existing.LoggedIn && !force {
				return fmt.Errorf("already logged in as %s; use --force to overwrite", existing.Username)
			}

			prompter := ui.NewPrompter(os.Stdin, os.Stderr)
			url, err := prompter.Line("Jira URL")
			if err != nil {
				return err
			}
			username, err := prompter.Line("Username")
			if err != nil {
				return err
			}
			secret, err := prompter.Secret("Password")
			if err != nil {
				return err
			}

			url = strings.TrimRight(strings.TrimSpace(url), "/")
			if url == "" || username == "" {
				return fmt.Errorf("url and username are required")
			}

			// Verify before persisting; the original saved credentials blind.
			client := api.NewClient(api.Config{
				BaseURL:  url,
				Username: username,
				Secret:   secret,
				Timeout:  cfg.Timeout(),
			})
			session, err := client.CurrentSession(cmd.Context())
			if err != nil {
				return fmt.Errorf("credential check failed: %w", err)
			}

			err = store.Save(cmd.Context(), credstore.Credentials{
				URL:      url,
				Username: username,
				Secret:   secret,
				LoggedIn: true,
			})
			if err != nil {
				return err
			}
			return writePlain("logged in as %s\n", session.Name)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing login")

	return cmd
}
