package model

import (
	"time"
)

type Answer struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	UserID     string    `json:"user_id"`
	QuestionID string    `json:"question_id"`
	Votes      int       `json:"votes"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Username   *string   `json:"username,omitempty"` // For display
}
