package dto

type FeedCandidatePayload struct {
	UserID      int64    `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	City        string   `json:"city"`
	VibeTags    string   `json:"vibe_tags"`
	Icebreakers []string `json:"icebreakers"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
}

type NextCandidateResponse struct {
	Empty     bool                  `json:"empty"`
	Candidate *FeedCandidatePayload `json:"candidate,omitempty"`
}
