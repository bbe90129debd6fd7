package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportSummaryCommand(ctx *commandContext) *cobra.Command {
	var list, show, skipExisting bool

	cmd := &cobra.Command{
		Use:   "export-summary [video-id]",
		Short: "Generate a summary and store it as Markdown in S3",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.archive == nil {
				return errors.New("summary export requires S3_BUCKET")
			}

			if list {
				ids, err := a.archive.ListExported(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.flags.json {
					return writeJSON(cmd, ids)
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			if len(args) == 0 {
				return errors.New("video id is required unless --list is set")
			}
			if show {
				doc, err := a.archive.LoadSummary(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			if skipExisting {
				exists, err := a.archive.Exists(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if exists {
					fmt.Fprintf(cmd.OutOrStdout(), "Summary for %s already exported to %s\n", args[0], a.archive.Key(args[0]))
					return nil
				}
			}
			if err := selectVideo(cmd.Context(), a.runner, args[0]); err != nil {
				return err
			}
			if _, err := a.runner.GenerateSummary(cmd.Context()); err != nil {
				return err
			}
			location, err := a.runner.ExportSummary(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, map[string]string{"video_id": args[0], "location": location})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported summary to %s\n", location)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List video ids with an exported summary")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Do nothing when a summary was already exported")
	cmd.Flags().BoolVar(&show, "show", false, "Print a previously exported summary instead of exporting")
	return cmd
}
