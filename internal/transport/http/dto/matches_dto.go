package dto

import "time"

type MatchItemPayload struct {
	MatchID     int64     `json:"match_id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Age         int       `json:"age"`
	City        string    `json:"city"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MatchesResponse struct {
	Items []MatchItemPayload `json:"items"`
}
