package dto

type ProfileResponse struct {
	UserID      int64    `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Birthdate   string   `json:"birthdate,omitempty"`
	Age         int      `json:"age"`
	City        string   `json:"city"`
	VibeTags    string   `json:"vibe_tags"`
	Icebreakers []string `json:"icebreakers"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Birthdate   string   `json:"birthdate"`
	City        string   `json:"city"`
	VibeTags    string   `json:"vibe_tags"`
	Icebreakers []string `json:"icebreakers"`
	PhotoKey    string   `json:"photo_key"`
}
