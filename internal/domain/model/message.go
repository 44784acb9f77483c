package model

import "time"

type Message struct {
	ID              int64     `json:"id"`
	SenderUserID    int64     `json:"sender_user_id"`
	RecipientUserID int64     `json:"recipient_user_id"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"created_at"`
}
