package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"shorttrack/internal/shorts"
	"shorttrack/internal/tracker"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		statusFlag string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in the pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []shorts.Status
			if statusFlag != "" {
				status, ok := shorts.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFlag)
				}
				statuses = append(statuses, status)
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				views, err := svc.tracker.List(c, statuses...)
				if err != nil {
					return err
				}
				return renderItemViews(cmd, views, jsonOutput)
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newMineCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the open items assigned to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				views, err := svc.tracker.Mine(c, actor)
				if err != nil {
					return err
				}
				return renderItemViews(cmd, views, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newLateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "late",
		Short: "List items past their deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				views, err := svc.tracker.LateItems(c)
				if err != nil {
					return err
				}
				return renderItemViews(cmd, views, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				view, err := svc.tracker.Show(c, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, view)
				}
				renderItemDetail(cmd, view)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show item counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				stats, err := svc.tracker.Stats(c)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, stats)
				}
				rows := make([][]string, 0, len(stats))
				total := 0
				for _, status := range shorts.AllStatuses() {
					rows = append(rows, []string{displayStatus(status), fmt.Sprintf("%d", stats[status])})
					total += stats[status]
				}
				rows = append(rows, []string{"Total", fmt.Sprintf("%d", total)})
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Status", "Items"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRemindCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send deadline reminders for items due soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				sent, err := svc.tracker.SendDeadlineReminders(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sent %d reminder(s)\n", sent)
				return nil
			})
		},
	}
	return cmd
}

func renderItemViews(cmd *cobra.Command, views []tracker.ItemView, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd, views)
	}
	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No items")
		return nil
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Item.CreatedAt.Before(views[j].Item.CreatedAt)
	})
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		item := view.Item
		deadline := formatDeadline(item.Deadline)
		if view.Late {
			deadline += " (late)"
		}
		rows = append(rows, []string{
			item.ID,
			displayStatus(item.Status),
			item.Title,
			formatOptional(item.AssignedToID),
			deadline,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Status", "Title", "Assignee", "Deadline"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}

func renderItemDetail(cmd *cobra.Command, view *tracker.ItemView) {
	item := view.Item
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s\n", item.Title)
	fmt.Fprintf(out, "  ID:        %s\n", item.ID)
	fmt.Fprintf(out, "  Status:    %s\n", displayStatus(item.Status))
	fmt.Fprintf(out, "  Source:    %s (%s)\n", item.SourceChannel.Name, item.SourceChannel.ContentType)
	if item.TargetChannel != nil {
		fmt.Fprintf(out, "  Target:    %s (%s)\n", item.TargetChannel.Name, item.TargetChannel.ContentType)
	}
	fmt.Fprintf(out, "  Assignee:  %s\n", formatOptional(item.AssignedToID))
	fmt.Fprintf(out, "  Deadline:  %s\n", formatDeadline(item.Deadline))
	fmt.Fprintf(out, "  Late:      %s\n", yesNo(view.Late))
	if item.File != nil {
		fmt.Fprintf(out, "  File:      %s (%s)\n", item.File.Name, formatSize(item.File.Size))
	}
	if item.AdminFeedback != "" {
		fmt.Fprintf(out, "  Feedback:  %s\n", item.AdminFeedback)
	}
	if item.Notes != "" {
		fmt.Fprintf(out, "  Notes:     %s\n", item.Notes)
	}

	if len(view.Comments) > 0 {
		fmt.Fprintln(out, "  Comments:")
		for _, comment := range view.Comments {
			fmt.Fprintf(out, "    [%s] %s: %s\n",
				comment.CreatedAt.UTC().Format("2006-01-02 15:04"),
				comment.AuthorName,
				comment.Body,
			)
		}
	}
}
