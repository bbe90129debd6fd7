package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"vidqa/types"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func printVideo(w io.Writer, v types.Video) {
	fmt.Fprintln(w, v.Title)
	fmt.Fprintf(w, "  ID:        %s\n", v.ID.Value)
	fmt.Fprintf(w, "  Channel:   %s\n", v.Channel)
	fmt.Fprintf(w, "  Published: %s\n", v.PublishDate)
	fmt.Fprintf(w, "  Length:    %s\n", v.Length)
}

func printLibrary(w io.Writer, videos []types.Video) {
	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos processed yet.")
		return
	}
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{v.ID.Value, v.Title, v.Channel, v.PublishDate, v.Length})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Title", "Channel", "Published", "Length"}, rows))
}

func printAnswer(w io.Writer, a types.Answer) {
	fmt.Fprintf(w, "Q: %s\n\n", a.Question)
	fmt.Fprintf(w, "A: %s\n", a.Text)
	if a.AnswerType == types.AnswerTypeHybrid {
		fmt.Fprintln(w, "\n(answer combines the video with web results)")
	}
	if len(a.Sources) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSources:")
	for _, src := range a.Sources {
		if src.Text == "" {
			fmt.Fprintf(w, "  - %s\n", src.Label)
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", src.Label, src.Text)
	}
}

func printConversation(w io.Writer, msgs []types.ConversationMessage) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No conversation yet.")
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(w, "[%s] %s\n", m.Role, m.Content)
	}
}
