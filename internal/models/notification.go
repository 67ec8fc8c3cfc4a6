package models

import "time"

// Notification kinds.
const (
	KindAnswerPosted = "answer_posted"
	KindComment      = "comment"
	KindMention      = "mention"
)

type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	RelatedID *int      `json:"related_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
