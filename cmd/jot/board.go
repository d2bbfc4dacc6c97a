package main

import (
	"github.com/spf13/cobra"

	"jot/internal/config"
	"jot/internal/jira"
)

func newBoardCmd(cfg *config.Config, output *string) *cobra.Command {
	var onlyMine bool

	cmd := &cobra.Command{
		Use:   "board <project>",
		Short: "Show the active sprint of the project's primary board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cfg, output, func(service *jira.Service) error {
				columns, err := service.DisplayBoard(cmd.Context(), args[0], onlyMine)
				if err != nil {
					return err
				}
				if done, err := writeStructured(*output, columns); done {
					return err
				}
				writeBoardTable(columns)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&onlyMine, "mine", "m", false, "only show issues assigned to me")

	return cmd
}
