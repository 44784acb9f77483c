package model

import "time"

type Profile struct {
	UserID      int64      `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Birthdate   *time.Time `json:"birthdate"`
	Age         int        `json:"age"`
	City        string     `json:"city"`
	VibeTags    string     `json:"vibe_tags"`
	Icebreakers []string   `json:"icebreakers"`
	PhotoKey    string     `json:"photo_key"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
