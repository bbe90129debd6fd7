package normalize

import (
	"strings"
	"time"

	"vidqa/client"
	"vidqa/types"
)

// NoAnswerText replaces an absent or blank answer
const NoAnswerText = "No answer was returned for this question."

// Answer maps an ask response for the video it was asked about
func Answer(videoID, question string, raw *client.AnswerResponse, at time.Time) types.Answer {
	a := types.Answer{
		VideoID:    videoID,
		Question:   strings.TrimSpace(question),
		Text:       NoAnswerText,
		AnswerType: types.AnswerTypeVideoContent,
		Sources:    []types.SourceCitation{},
		AnsweredAt: at,
	}
	if raw == nil {
		return a
	}
	if text := textOf(raw.Answer); text != "" {
		a.Text = text
	}
	if kind := orDefault(raw.AnswerType, ""); kind != "" {
		a.AnswerType = kind
	}
	a.Sources = Sources(raw.Sources)
	return a
}
