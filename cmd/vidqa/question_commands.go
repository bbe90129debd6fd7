package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var videoID string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about a processed video",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := selectVideo(cmd.Context(), a.runner, videoID); err != nil {
				return err
			}
			// earlier turns give the service context for follow-ups
			if _, err := a.runner.LoadConversation(cmd.Context()); err != nil {
				a.log.Warn("continuing without conversation history", "error", err)
			}

			answer, err := a.runner.AskQuestion(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, answer)
			}
			printAnswer(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&videoID, "video", "v", "", "Video ID to ask about")
	_ = cmd.MarkFlagRequired("video")
	return cmd
}

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <video-id>",
		Short: "Generate a summary with timestamped highlights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := selectVideo(cmd.Context(), a.runner, args[0]); err != nil {
				return err
			}
			summary, err := a.runner.GenerateSummary(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, summary)
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary.Text)
			return nil
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var clearHistory bool

	cmd := &cobra.Command{
		Use:   "history <video-id>",
		Short: "Show or clear the question history of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := selectVideo(cmd.Context(), a.runner, args[0]); err != nil {
				return err
			}
			if clearHistory {
				if err := a.runner.ClearConversation(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Conversation cleared")
				return nil
			}

			msgs, err := a.runner.LoadConversation(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, msgs)
			}
			printConversation(cmd.OutOrStdout(), msgs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearHistory, "clear", false, "Clear the history instead of showing it")
	return cmd
}
