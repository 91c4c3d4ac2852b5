package notification

import "time"

type Type string

const (
	TypeJobMatch          Type = "job_match"
	TypeJobApplication    Type = "job_application"
	TypeApplicationUpdate Type = "application_update"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	RelatedID *string   `json:"related_id,omitempty"`
}

// Draft is what a handler decides to persist; id, read and created_at are
// assigned on insert.
type Draft struct {
	UserID    string
	Title     string
	Message   string
	Type      Type
	RelatedID string
}
