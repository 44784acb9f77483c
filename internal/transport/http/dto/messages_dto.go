package dto

import "time"

type SendMessageRequest struct {
	Body string `json:"body"`
}

type MessagePayload struct {
	ID              int64     `json:"id"`
	SenderUserID    int64     `json:"sender_user_id"`
	RecipientUserID int64     `json:"recipient_user_id"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"created_at"`
}

type ConversationResponse struct {
	Items []MessagePayload `json:"items"`
}

type OpenConversationResponse struct {
	OK bool `json:"ok"`
}
