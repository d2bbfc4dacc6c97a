package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jot/internal/config"
	"jot/internal/jira"
	"jot/internal/timeutil"
)

func newWorklogCmd(cfg *config.Config, output *string) *cobra.Command {
	var (
		user string
		date string
	)

	cmd := &cobra.Command{
		Use:   "worklog",
		Short: "Show a user's work log for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := timeutil.ParseDay(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
			}
			return withService(cfg, output, func(service *jira.Service) error {
				entries, err := service.WorklogReport(cmd.Context(), user, day)
				if err != nil {
					return err
				}
				if done, err := writeStructured(*output, entries); done {
					return err
				}
				writeReportTable(entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user to report on (default: me)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to report on, YYYY-MM-DD (default: today)")

	return cmd
}
