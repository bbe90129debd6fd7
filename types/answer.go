package types

import "time"

// Answer types reported by the service
const (
	AnswerTypeVideoContent = "video_content"
	AnswerTypeHybrid       = "hybrid"
)

// SourceCitation is one normalized piece of evidence backing an answer.
// Label is never empty and Text is never absent.
type SourceCitation struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Answer is the response to a question about exactly one video
type Answer struct {
	VideoID    string           `json:"video_id"`
	Question   string           `json:"question"`
	Text       string           `json:"text"`
	AnswerType string           `json:"answer_type"`
	Sources    []SourceCitation `json:"sources"`
	AnsweredAt time.Time        `json:"answered_at"`
}

// Highlight is one timestamped key point of a summary
type Highlight struct {
	Timestamp string   `json:"timestamp"`
	MainPoint string   `json:"main_point"`
	SubPoints []string `json:"sub_points"`
}

// Summary holds the flattened display text and the highlights it was built from
type Summary struct {
	VideoID     string      `json:"video_id"`
	Text        string      `json:"text"`
	Highlights  []Highlight `json:"highlights"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one turn of the question history kept per video
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
