package normalize

import (
	"strings"
	"time"

	"vidqa/client"
	"vidqa/types"
)

// Summary defaults
const (
	NoSummaryText     = "No summary available."
	HighlightsHeading = "Key Highlights"
	untitledPoint     = "Key point"
	subPointIndent    = "  - "
)

// Highlights maps raw highlights, dropping blank sub-points
func Highlights(raws []client.RawHighlight) []types.Highlight {
	out := make([]types.Highlight, 0, len(raws))
	for _, raw := range raws {
		h := types.Highlight{
			Timestamp: Timestamp(raw.Timestamp),
			MainPoint: textOf(raw.MainPoint),
			SubPoints: make([]string, 0, len(raw.SubPoints)),
		}
		if h.MainPoint == "" {
			h.MainPoint = untitledPoint
		}
		for _, sp := range raw.SubPoints {
			if sp = strings.TrimSpace(sp); sp != "" {
				h.SubPoints = append(h.SubPoints, sp)
			}
		}
		out = append(out, h)
	}
	return out
}

// SummaryText flattens the overall summary and its highlights into one
// display string. The highlights section is omitted when there are none.
func SummaryText(overall string, highlights []types.Highlight) string {
	overall = strings.TrimSpace(overall)
	if overall == "" {
		overall = NoSummaryText
	}
	if len(highlights) == 0 {
		return overall
	}

	var b strings.Builder
	b.WriteString(overall)
	b.WriteString("\n\n")
	b.WriteString(HighlightsHeading)
	for _, h := range highlights {
		b.WriteString("\n")
		if h.Timestamp != "" {
			b.WriteString("[" + h.Timestamp + "] ")
		}
		b.WriteString(h.MainPoint)
		for _, sp := range h.SubPoints {
			b.WriteString("\n")
			b.WriteString(subPointIndent)
			b.WriteString(sp)
		}
	}
	return b.String()
}

// Summary maps a summary response for the video it was generated for
func Summary(videoID string, raw *client.SummaryResponse, at time.Time) types.Summary {
	s := types.Summary{
		VideoID:     videoID,
		Highlights:  []types.Highlight{},
		GeneratedAt: at,
	}
	overall := ""
	if raw != nil {
		overall = textOf(raw.OverallSummary)
		s.Highlights = Highlights(raw.Highlights)
	}
	s.Text = SummaryText(overall, s.Highlights)
	return s
}
