package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shorttrack/internal/shorts"
)

var titleCaser = cases.Title(language.Und)

// displayStatus renders a status for humans, e.g. "In Progress".
func displayStatus(status shorts.Status) string {
	return titleCaser.String(strings.ReplaceAll(string(status), "_", " "))
}

func printItemLine(cmd *cobra.Command, item *shorts.Item) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %s\n", item.ID, displayStatus(item.Status), item.Title)
}

func formatDeadline(deadline *time.Time) string {
	if deadline == nil {
		return "-"
	}
	return deadline.UTC().Format("2006-01-02 15:04")
}

func formatOptional(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
