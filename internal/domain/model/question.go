package model

import (
	"time"
)

type Question struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Content      string    `json:"content"`
	UserID       string    `json:"user_id"`
	CategoryID   string    `json:"category_id"`
	Views        int       `json:"views"`
	Votes        int       `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     *string   `json:"username,omitempty"`      // For display
	CategoryName *string   `json:"category_name,omitempty"` // For display
	Answers      []Answer  `json:"answers,omitempty"`       // Detail view only
}
