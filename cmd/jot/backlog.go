package main

import (
	"github.com/spf13/cobra"

	"jot/internal/config"
	"jot/internal/jira"
)

func newBacklogCmd(cfg *config.Config, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backlog <project>",
		Short: "List the open sprints of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cfg, output, func(service *jira.Service) error {
				sprints, err := service.OpenSprints(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if done, err := writeStructured(*output, sprints); done {
					return err
				}
				writeSprintTable(sprints)
				return nil
			})
		},
	}
}
