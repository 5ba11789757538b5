package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shorttrack/internal/shorts"
	"shorttrack/internal/tracker"
)

func newRollCommand(ctx *commandContext) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "roll <title> <source-channel>",
		Short: "Record a freshly spotted Short",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				item, err := svc.tracker.Roll(c, actor, args[0], args[1], notes)
				if err != nil {
					return err
				}
				printItemLine(cmd, item)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Curation notes")
	return cmd
}

func newRetainCommand(ctx *commandContext) *cobra.Command {
	return transitionCommand(ctx, "retain <item-id>", "Mark a rolled item as worth producing",
		func(c context.Context, tr *tracker.Tracker, itemID, actor string) (*shorts.Item, error) {
			return tr.Retain(c, itemID, actor)
		})
}

func newDiscardCommand(ctx *commandContext) *cobra.Command {
	return transitionCommand(ctx, "discard <item-id>", "Drop an item during curation",
		func(c context.Context, tr *tracker.Tracker, itemID, actor string) (*shorts.Item, error) {
			return tr.Discard(c, itemID, actor)
		})
}

func newStartCommand(ctx *commandContext) *cobra.Command {
	return transitionCommand(ctx, "start <item-id>", "Start working on an assigned item",
		func(c context.Context, tr *tracker.Tracker, itemID, actor string) (*shorts.Item, error) {
			return tr.Start(c, itemID, actor)
		})
}

func newPublishCommand(ctx *commandContext) *cobra.Command {
	return transitionCommand(ctx, "publish <item-id>", "Mark a validated item as live",
		func(c context.Context, tr *tracker.Tracker, itemID, actor string) (*shorts.Item, error) {
			return tr.Publish(c, itemID, actor)
		})
}

func newAssignCommand(ctx *commandContext) *cobra.Command {
	var (
		assignee string
		channel  string
		due      string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "assign <item-id>",
		Short: "Assign a retained item to a videaste",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			deadline, err := parseDeadline(due)
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				item, err := svc.tracker.Assign(c, args[0], actor, tracker.AssignArgs{
					AssigneeID:      assignee,
					TargetChannelID: channel,
					Deadline:        deadline,
					Notes:           notes,
				})
				if err != nil {
					return err
				}
				printItemLine(cmd, item)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&assignee, "to", "", "Assignee user id")
	cmd.Flags().StringVar(&channel, "channel", "", "Target channel id")
	cmd.Flags().StringVar(&due, "due", "", "Deadline (YYYY-MM-DD or RFC 3339, default from config)")
	cmd.Flags().StringVar(&notes, "notes", "", "Assignment notes")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var feedback string

	cmd := &cobra.Command{
		Use:   "validate <item-id>",
		Short: "Approve a completed upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				item, err := svc.tracker.Validate(c, args[0], actor, feedback)
				if err != nil {
					return err
				}
				printItemLine(cmd, item)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&feedback, "feedback", "", "Optional reviewer feedback")
	return cmd
}

func newRejectCommand(ctx *commandContext) *cobra.Command {
	var (
		feedback   string
		deleteFile bool
	)

	cmd := &cobra.Command{
		Use:   "reject <item-id>",
		Short: "Send a completed upload back with feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				item, err := svc.tracker.Reject(c, args[0], actor, feedback, deleteFile)
				if err != nil {
					return err
				}
				printItemLine(cmd, item)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&feedback, "feedback", "", "Why the upload was rejected (required for review rejections)")
	cmd.Flags().BoolVar(&deleteFile, "delete-file", false, "Also delete the uploaded video blob")
	return cmd
}

func newCommentCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <item-id> <text>",
		Short: "Append a comment to an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				comment, err := svc.tracker.Comment(c, args[0], actor, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Comment #%d added by %s\n", comment.ID, comment.AuthorName)
				return nil
			})
		},
	}
	return cmd
}

func transitionCommand(ctx *commandContext, use, short string, run func(context.Context, *tracker.Tracker, string, string) (*shorts.Item, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				item, err := run(c, svc.tracker, args[0], actor)
				if err != nil {
					return err
				}
				printItemLine(cmd, item)
				return nil
			})
		},
	}
}

func parseDeadline(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("parse deadline %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	// Date-only deadlines mean end of that day.
	t = t.Add(24*time.Hour - time.Second).UTC()
	return &t, nil
}
