package model

import (
	"time"
)

// Notification is a broadcast message shown to all users.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNotificationRequest is the payload for creating a broadcast.
type CreateNotificationRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required,max=2000"`
}
