package dto

type SwipeRequest struct {
	TargetID int64  `json:"target_id"`
	Action   string `json:"action"`
}

type SwipeResponse struct {
	OK            bool  `json:"ok"`
	MatchCreated  bool  `json:"match_created"`
	MatchedUserID int64 `json:"matched_user_id,omitempty"`
}
