package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jot/internal/config"
	"jot/internal/jira"
	"jot/internal/timeutil"
)

func newLogCmd(cfg *config.Config, output *string) *cobra.Command {
	var (
		message string
		start   string
	)

	cmd := &cobra.Command{
		Use:   "log <issue> <duration>",
		Short: "Log work on an issue, e.g. jot log PROJ-123 1.5h",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueKey := args[0]

			duration, ok := timeutil.ParseDuration(args[1])
			if !ok {
				return &jira.ValidationError{Message: fmt.Sprintf("invalid duration %q (expected e.g. 45m, 1.5h, 2d, 1w)", args[1])}
			}

			var startAt time.Time
			if start != "" {
				clock, ok := timeutil.ParseTimeOfDay(start)
				if !ok {
					return &jira.ValidationError{Message: fmt.Sprintf("invalid start time %q (expected H:MM or H:MM am/pm)", start)}
				}
				startAt = clock.On(time.Now())
			}

			return withService(cfg, output, func(service *jira.Service) error {
				if err := service.AddWorklog(cmd.Context(), issueKey, duration.Seconds(), startAt, message); err != nil {
					return err
				}
				return writePlain("logged %s on %s\n", args[1], issueKey)
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "work log comment")
	cmd.Flags().StringVarP(&start, "start", "s", "", "start time, H:MM or H:MM am/pm (default: now)")

	return cmd
}
