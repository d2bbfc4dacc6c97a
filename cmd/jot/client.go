package main

import (
	"context"
	"errors"
	"os"

	"jot/internal/api"
	"jot/internal/config"
	"jot/internal/credstore"
	"jot/internal/jira"
	"jot/internal/ui"
)

var errNotLoggedIn = errors.New("not logged in; run: jot login")

// withService loads stored credentials, builds the transport and
// aggregation service, and runs fn. The spinner is attached only for table
// output so JSON/YAML streams stay clean.
func withService(cfg *config.Config, output *string, fn func(*jira.Service) error) error {
	store, err := credstore.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	creds, found, err := store.Load(context.Background())
	if err != nil {
		return err
	}
	if !found || !creds.LoggedIn {
		return errNotLoggedIn
	}

	client := api.NewClient(api.Config{
		BaseURL:  creds.URL,
		Username: creds.Username,
		Secret:   creds.Secret,
		Timeout:  cfg.Timeout(),
	})

	opts := []jira.Option{}
	if output == nil || *output == outputTable {
		opts = append(opts, jira.WithProgress(ui.NewSpinner(os.Stderr)))
	}
	return fn(jira.NewService(client, opts...))
}
