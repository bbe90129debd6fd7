package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidqa/config"
)

func newImportFeedCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "import-feed <channel-or-playlist>",
		Short: "Process the latest videos of a channel or playlist feed",
		Long: "Accepts a channel id (UC...), a playlist id (PL...), a YouTube channel or\n" +
			"playlist URL, or any RSS/Atom feed URL whose entries link to videos.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.runner.ImportFeed(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			for _, v := range result.Processed {
				fmt.Fprintf(out, "✓ %s (%s)\n", v.Title, v.ID.Value)
			}
			for _, f := range result.Failed {
				fmt.Fprintf(out, "✗ %s: %s\n", f.URL, f.Reason)
			}
			fmt.Fprintf(out, "Imported %d of %d videos\n", len(result.Processed), len(result.Processed)+len(result.Failed))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", config.DefaultFeedLimit, "Maximum number of feed entries to process")
	return cmd
}
