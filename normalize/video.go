// Package normalize maps raw service payloads into the canonical session
// types. Every function is pure and total: missing or malformed optional
// fields fall back to documented defaults instead of failing.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"vidqa/client"
	"vidqa/types"
)

// Defaults for missing video metadata
const (
	UnknownTitle   = "Untitled Video"
	UnknownChannel = "Unknown Channel"
	UnknownDate    = "Unknown Date"
	UnknownLength  = "Unknown"
)

// CharsPerMinute approximates spoken transcript density
const CharsPerMinute = 900

// Video maps a raw video payload. The id is left empty when the service did
// not send one; callers decide whether to assign a provisional id.
func Video(raw client.RawVideo, processedAt time.Time) types.Video {
	v := types.Video{
		Title:       orDefault(raw.Title, UnknownTitle),
		Channel:     orDefault(raw.Channel, UnknownChannel),
		PublishDate: orDefault(raw.PublishDate, UnknownDate),
		SourceURL:   trimmed(raw.URL),
		Length:      videoLength(raw),
		ProcessedAt: processedAt,
	}
	if id := trimmed(raw.VideoID); id != "" {
		v.ID = types.ServerID(id)
	}
	return v
}

// Videos maps a list response, skipping nothing: entries without an id keep
// an empty id and are left to the caller.
func Videos(resp *client.ListResponse, processedAt time.Time) []types.Video {
	if resp == nil {
		return []types.Video{}
	}
	out := make([]types.Video, 0, len(resp.Videos))
	for _, entry := range resp.Videos {
		out = append(out, Video(entry.Raw(), processedAt))
	}
	return out
}

func videoLength(raw client.RawVideo) string {
	if d := orDefault(raw.Duration, ""); d != "" && !strings.EqualFold(d, "unknown") {
		return d
	}
	if raw.TranscriptLength != nil && raw.TranscriptLength.Valid && raw.TranscriptLength.Value > 0 {
		return ApproximateLength(raw.TranscriptLength.Value)
	}
	return UnknownLength
}

// ApproximateLength turns a transcript character count into a rough
// human-readable running time.
func ApproximateLength(chars int64) string {
	minutes := (chars + CharsPerMinute/2) / CharsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	if minutes < 60 {
		return fmt.Sprintf("~%d min", minutes)
	}
	return fmt.Sprintf("~%dh %02dm", minutes/60, minutes%60)
}

// orDefault returns the trimmed value, or def when it is absent, blank, or the
// service's own "Unknown" placeholder.
func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "unknown") {
		return def
	}
	return v
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
