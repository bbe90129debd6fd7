package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProvisionalPrefix marks ids generated on the client while the service has
// not yet returned a real one.
const ProvisionalPrefix = "local-"

// VideoID identifies a video in the library. A provisional id was generated
// locally and must be replaced once the service issues a real id.
type VideoID struct {
	Value       string `json:"value"`
	Provisional bool   `json:"provisional,omitempty"`
}

// ServerID wraps an id issued by the remote service
func ServerID(id string) VideoID {
	return VideoID{Value: strings.TrimSpace(id)}
}

// NewProvisionalID creates a client-side fallback id
func NewProvisionalID() VideoID {
	return VideoID{Value: ProvisionalPrefix + uuid.NewString(), Provisional: true}
}

// IsZero reports whether the id is unset
func (id VideoID) IsZero() bool {
	return id.Value == ""
}

func (id VideoID) String() string {
	return id.Value
}

// Video is the canonical client-side record of one processed video
type Video struct {
	ID          VideoID   `json:"id"`
	SourceURL   string    `json:"source_url"`
	Title       string    `json:"title"`
	Channel     string    `json:"channel"`
	PublishDate string    `json:"publish_date"`
	Length      string    `json:"length"`
	ProcessedAt time.Time `json:"processed_at"`
}
