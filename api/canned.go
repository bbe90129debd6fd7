package api

import (
	"fmt"
	"strings"
	"time"

	"vidqa/api/store"
	"vidqa/types"
)

const (
	summaryInterval    = 8 * time.Minute
	maxSummarySegments = 10
	transcriptMarker   = "youtube_transcript"
)

// Questions about the outside world get a hybrid answer with web sources
var externalKeywords = []string{"latest", "current", "news", "today", "recent", "compare", "who is", "what is the price"}

func isExternalQuestion(q string) bool {
	q = strings.ToLower(q)
	for _, kw := range externalKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// videoDuration estimates spoken length from transcript size
func videoDuration(v store.Video) time.Duration {
	return time.Duration(v.TranscriptLength) * time.Minute / charsPerMinute
}

// cannedAnswer builds a deterministic answer whose sources cover every
// shape the real backend emits: string and numeric timestamps, metadata,
// transcript chunks, plain labeled text and web results.
func cannedAnswer(v store.Video, question string, history []types.ConversationMessage) map[string]any {
	mid := videoDuration(v) / 2
	excerpt := fmt.Sprintf("In %q the presenter walks through the main ideas step by step.", v.Title)

	var answer strings.Builder
	if len(history) > 0 {
		answer.WriteString("Following up on our conversation: ")
	}
	fmt.Fprintf(&answer, "The video %q addresses %q directly. ", v.Title, strings.TrimSpace(question))
	fmt.Fprintf(&answer, "Around %s the key explanation is given, and the closing section summarizes it.", FormatClock(mid))

	sources := []map[string]any{
		{"timestamp": "00:00", "text": excerpt, "type": "transcript", "source": transcriptMarker},
		{"timestamp": int(mid / time.Second), "text": "The central explanation of the topic."},
		{"type": "metadata", "source": "title", "text": v.Title},
		{"type": "transcript", "source": transcriptMarker, "text": "A closing recap of the discussion."},
		{"source": v.Channel, "text": "Channel description."},
	}

	answerType := types.AnswerTypeVideoContent
	if isExternalQuestion(question) {
		answerType = types.AnswerTypeHybrid
		answer.WriteString(" Recent coverage on the web adds further context.")
		sources = append(sources, map[string]any{
			"type":   "web",
			"source": "https://en.wikipedia.org/wiki/Special:Search?search=" + strings.ReplaceAll(strings.TrimSpace(question), " ", "+"),
			"text":   "[Web] Background reading related to the question...",
		})
	}

	texts := make([]string, 0, len(sources))
	for _, src := range sources {
		if t, ok := src["text"].(string); ok {
			texts = append(texts, t)
		}
	}

	return map[string]any{
		"question":    question,
		"answer":      answer.String(),
		"context":     texts,
		"sources":     sources,
		"video_id":    v.ID,
		"answer_type": answerType,
	}
}

// cannedSummary splits the video into fixed-interval segments, one
// highlight each
func cannedSummary(v store.Video) map[string]any {
	total := videoDuration(v)
	segments := int((total + summaryInterval - 1) / summaryInterval)
	segments = max(1, min(segments, maxSummarySegments))

	highlights := make([]map[string]any, 0, segments)
	for i := 0; i < segments; i++ {
		start := time.Duration(i) * summaryInterval
		highlights = append(highlights, map[string]any{
			"timestamp":  FormatClock(start),
			"main_point": fmt.Sprintf("Part %d of %s", i+1, v.Title),
			"sub_points": []string{
				"Introduces the segment's topic",
				"Gives a worked example",
			},
		})
	}

	return map[string]any{
		"video_id":        v.ID,
		"overall_summary": fmt.Sprintf("%q by %s covers its topic in %d parts.", v.Title, v.Channel, segments),
		"highlights":      highlights,
		"status":          "success",
	}
}
