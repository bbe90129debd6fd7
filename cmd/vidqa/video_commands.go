package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <youtube-url>",
		Short: "Submit a video for processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			v, err := a.runner.ProcessVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, v)
			}
			printVideo(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List processed videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.runner.LoadLibrary(cmd.Context()); err != nil {
				return err
			}
			library := a.runner.Store().Snapshot().Library
			if ctx.flags.json {
				return writeJSON(cmd, library)
			}
			printLibrary(cmd.OutOrStdout(), library)
			return nil
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <video-id>",
		Short: "Delete a processed video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.runner.LoadLibrary(cmd.Context()); err != nil {
				return err
			}
			if err := a.runner.DeleteVideo(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
