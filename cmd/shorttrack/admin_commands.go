package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shorttrack/internal/shorts"
)

func newChannelCommand(ctx *commandContext) *cobra.Command {
	channelCmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage channels",
	}
	channelCmd.AddCommand(newChannelAddCommand(ctx))
	channelCmd.AddCommand(newChannelListCommand(ctx))
	return channelCmd
}

func newChannelAddCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <id> <content-type>",
		Short: "Register or update a channel",
		Long:  "Content type is language and edit joined by an underscore, e.g. vf_avec_edit or va_sans_edit.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType, ok := shorts.ParseContentType(args[1])
			if !ok {
				return fmt.Errorf("unknown content type %q", args[1])
			}
			channel := shorts.Channel{ID: args[0], Name: name, ContentType: contentType}
			if channel.Name == "" {
				channel.Name = channel.ID
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				if err := svc.store.UpsertChannel(c, channel); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Channel %s (%s) saved\n", channel.ID, channel.ContentType)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the id)")
	return cmd
}

func newChannelListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				channels, err := svc.store.ListChannels(c)
				if err != nil {
					return err
				}
				if len(channels) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No channels")
					return nil
				}
				rows := make([][]string, 0, len(channels))
				for _, channel := range channels {
					rows = append(rows, []string{channel.ID, channel.Name, channel.ContentType.String()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Content Type"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	return cmd
}

func newActorCommand(ctx *commandContext) *cobra.Command {
	actorCmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage users",
	}
	actorCmd.AddCommand(newActorAddCommand(ctx))
	actorCmd.AddCommand(newActorListCommand(ctx))
	return actorCmd
}

func newActorAddCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		optOut bool
	)

	cmd := &cobra.Command{
		Use:   "add <id> <role>",
		Short: "Register or update a user",
		Long:  "Role is one of admin, assistant, videaste.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, ok := shorts.ParseRole(args[1])
			if !ok {
				return fmt.Errorf("unknown role %q", args[1])
			}
			actor := shorts.Actor{ID: args[0], Name: name, Role: role, NotifyOptOut: optOut}
			if actor.Name == "" {
				actor.Name = actor.ID
			}
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				if err := svc.store.UpsertActor(c, actor); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Actor %s (%s) saved\n", actor.ID, actor.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the id)")
	cmd.Flags().BoolVar(&optOut, "no-notify", false, "Opt the user out of notifications")
	return cmd
}

func newActorListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				actors, err := svc.store.ListActors(c)
				if err != nil {
					return err
				}
				if len(actors) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No actors")
					return nil
				}
				rows := make([][]string, 0, len(actors))
				for _, actor := range actors {
					rows = append(rows, []string{actor.ID, actor.Name, string(actor.Role), yesNo(!actor.NotifyOptOut)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Role", "Notify"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	return cmd
}
