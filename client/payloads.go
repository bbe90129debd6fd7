package client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"vidqa/types"
)

// FlexInt decodes a JSON number or numeric string. It never fails: anything
// else leaves Valid false.
type FlexInt struct {
	Value int64
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			*f = FlexInt{Value: v, Valid: true}
		} else if fv, err := n.Float64(); err == nil {
			*f = FlexInt{Value: int64(fv), Valid: true}
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			*f = FlexInt{Value: v, Valid: true}
		}
	}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// RawVideo is the video metadata shape returned by the process endpoint and
// nested under "info" in the list endpoint.
type RawVideo struct {
	VideoID          *string  `json:"video_id,omitempty"`
	Title            *string  `json:"title,omitempty"`
	TranscriptLength *FlexInt `json:"transcript_length,omitempty"`
	Channel          *string  `json:"channel,omitempty"`
	PublishDate      *string  `json:"publish_date,omitempty"`
	Duration         *string  `json:"duration,omitempty"`
	URL              *string  `json:"url,omitempty"`
}

// ProcessResponse is returned by POST /videos/process
type ProcessResponse struct {
	RawVideo
	ChunksCreated *FlexInt `json:"chunks_created,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// ListedVideo is one entry of GET /videos/list
type ListedVideo struct {
	VideoID   *string  `json:"video_id,omitempty"`
	Info      RawVideo `json:"info"`
	Processed bool     `json:"processed"`
}

// Raw merges the entry id into its info block
func (l ListedVideo) Raw() RawVideo {
	raw := l.Info
	if l.VideoID != nil {
		raw.VideoID = l.VideoID
	}
	return raw
}

// ListResponse is returned by GET /videos/list
type ListResponse struct {
	Videos []ListedVideo `json:"videos"`
}

// RawSource is one citation as sent by the service. The shape varies by
// origin: transcript spans carry a timestamp, web results carry type "web",
// metadata snippets carry type "metadata" plus the metadata field name.
type RawSource struct {
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Type      *string         `json:"type,omitempty"`
	Source    *string         `json:"source,omitempty"`
	Text      *string         `json:"text,omitempty"`
}

// AnswerResponse is returned by POST /questions/ask
type AnswerResponse struct {
	Question   *string     `json:"question,omitempty"`
	Answer     *string     `json:"answer,omitempty"`
	Sources    []RawSource `json:"sources,omitempty"`
	VideoID    *string     `json:"video_id,omitempty"`
	AnswerType *string     `json:"answer_type,omitempty"`
	Context    []string    `json:"context,omitempty"`
}

// RawHighlight is one highlight of a summary response
type RawHighlight struct {
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	MainPoint *string         `json:"main_point,omitempty"`
	SubPoints []string        `json:"sub_points,omitempty"`
}

// SummaryResponse is returned by POST /summaries/generate
type SummaryResponse struct {
	VideoID        *string        `json:"video_id,omitempty"`
	OverallSummary *string        `json:"overall_summary,omitempty"`
	Highlights     []RawHighlight `json:"highlights,omitempty"`
	Status         *string        `json:"status,omitempty"`
}

// ConversationResponse is returned by GET /questions/conversation/{id}
type ConversationResponse struct {
	VideoID      string                      `json:"video_id"`
	Conversation []types.ConversationMessage `json:"conversation"`
}
