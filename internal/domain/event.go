package domain

import "time"

const (
	EventVideoIngested  = "video.ingested"
	EventPointerUpdated = "pointer.updated"
)

// Event is the notification published after a store mutation.
type Event struct {
	Type       string         `json:"type"`
	Job        string         `json:"job"`
	Collection string         `json:"collection"`
	DocumentID string         `json:"document_id"`
	VideoID    string         `json:"video_id"`
	Fields     map[string]any `json:"fields"`
	Timestamp  time.Time      `json:"timestamp"`
}
