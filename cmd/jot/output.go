package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"jot/internal/api"
	"jot/internal/format"
	"jot/internal/jira"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var boldKey = color.New(color.Bold).SprintFunc()

func validateOutputMode(mode string) error {
	switch mode {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("invalid --output %q (expected table, json or yaml)", mode)
	}
}

// writeStructured renders the payload as JSON or YAML; it reports false for
// table mode so callers fall through to their table writer.
func writeStructured(mode string, payload any) (bool, error) {
	var formatter format.Formatter
	switch mode {
	case outputJSON:
		formatter = format.JSONFormatter{}
	case outputYAML:
		formatter = format.YAMLFormatter{}
	default:
		return false, nil
	}
	return true, formatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeSprintTable(sprints []api.Sprint) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Sprint", "State"})
	for _, sprint := range sprints {
		table.Append([]string{strconv.Itoa(sprint.ID), sprint.Name, sprint.State})
	}
	table.Render()
}

func writeBoardTable(columns []jira.BoardColumn) {
	headers := make([]string, 0, len(columns))
	maxIssues := 0
	for _, column := range columns {
		headers = append(headers, column.Name)
		if len(column.Issues) > maxIssues {
			maxIssues = len(column.Issues)
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetRowLine(true)
	table.SetAutoWrapText(true)
	for i := 0; i < maxIssues; i++ {
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			if i < len(column.Issues) {
				issue := column.Issues[i]
				row = append(row, boldKey(issue.Key)+"\n"+issue.Fields.Summary)
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}
	table.Render()
}

func writeReportTable(entries []jira.ReportEntry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Start", "Issue", "Hours", "Comment"})

	total := 0
	for _, entry := range entries {
		total += entry.DurationSeconds
		issue := boldKey(entry.IssueKey)
		if entry.IssueSummary != "" {
			issue += " " + entry.IssueSummary
		}
		table.Append([]string{
			entry.Start.Format("15:04"),
			issue,
			formatHours(entry.DurationSeconds),
			entry.Comment,
		})
	}
	table.SetFooter([]string{"", "Total", formatHours(total), ""})
	table.Render()
}

// formatHours renders seconds as decimal hours with at most two decimals
// and no trailing zeros, e.g. 5400 -> "1.5".
func formatHours(seconds int) string {
	hours := float64(seconds) / 3600
	rounded := math.Round(hours*100) / 100
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(rounded, 'f', 2, 64), "0"), ".")
}
