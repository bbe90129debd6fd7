package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"vidqa/client"
	"vidqa/types"
)

// TranscriptMarker is the source value the service uses for transcript chunks
const TranscriptMarker = "youtube_transcript"

// Citation labels
const (
	LabelReference  = "Reference"
	LabelWeb        = "Web Source"
	LabelTranscript = "Video Transcript"
	LabelMetadata   = "Metadata"
)

// SourceKind tags the closed set of raw citation shapes. The order of the
// constants is the precedence used when a raw source matches several shapes.
type SourceKind int

const (
	KindTimestampedSpan SourceKind = iota
	KindWebSnippet
	KindMetadataSnippet
	KindTranscriptSnippet
	KindLabeledText
	KindUnlabeled
)

func (k SourceKind) String() string {
	switch k {
	case KindTimestampedSpan:
		return "timestamped_span"
	case KindWebSnippet:
		return "web_snippet"
	case KindMetadataSnippet:
		return "metadata_snippet"
	case KindTranscriptSnippet:
		return "transcript_snippet"
	case KindLabeledText:
		return "labeled_text"
	default:
		return "unlabeled"
	}
}

// ClassifiedSource is a raw source resolved to exactly one shape
type ClassifiedSource struct {
	Kind      SourceKind
	Timestamp string
	Origin    string
	Text      string
}

// Classify resolves the shape of a raw source. The checks run in precedence
// order and the first match wins.
func Classify(raw client.RawSource) ClassifiedSource {
	c := ClassifiedSource{
		Origin: orDefault(raw.Source, ""),
		Text:   textOf(raw.Text),
	}
	kind := strings.ToLower(orDefault(raw.Type, ""))

	switch ts := Timestamp(raw.Timestamp); {
	case ts != "":
		c.Kind = KindTimestampedSpan
		c.Timestamp = ts
	case kind == "web":
		c.Kind = KindWebSnippet
	case kind == "metadata":
		c.Kind = KindMetadataSnippet
	case c.Origin == TranscriptMarker:
		c.Kind = KindTranscriptSnippet
	case c.Origin != "":
		c.Kind = KindLabeledText
	default:
		c.Kind = KindUnlabeled
	}
	return c
}

// Label renders the display label for a classified source
func (c ClassifiedSource) Label() string {
	switch c.Kind {
	case KindTimestampedSpan:
		return "Time: " + c.Timestamp
	case KindWebSnippet:
		return LabelWeb
	case KindMetadataSnippet:
		if c.Origin == "" {
			return LabelMetadata
		}
		return LabelMetadata + ": " + c.Origin
	case KindTranscriptSnippet:
		return LabelTranscript
	case KindLabeledText:
		return c.Origin
	default:
		return LabelReference
	}
}

// Source maps one raw citation
func Source(raw client.RawSource) types.SourceCitation {
	c := Classify(raw)
	return types.SourceCitation{Label: c.Label(), Text: c.Text}
}

// Sources maps citations in order; the result is never nil
func Sources(raws []client.RawSource) []types.SourceCitation {
	out := make([]types.SourceCitation, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Source(raw))
	}
	return out
}

// Timestamp reads a timestamp that may arrive as a string ("02:15") or as a
// number of seconds (135.2). Anything else yields "".
func Timestamp(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f >= 0 && !math.IsInf(f, 0) {
		return FormatSeconds(f)
	}
	return ""
}

// FormatSeconds renders a position as MM:SS, or H:MM:SS past the hour
func FormatSeconds(seconds float64) string {
	total := int64(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
