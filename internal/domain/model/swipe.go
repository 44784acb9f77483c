package model

import "time"

type Swipe struct {
	ID           int64     `json:"id"`
	ActorUserID  int64     `json:"actor_user_id"`
	TargetUserID int64     `json:"target_user_id"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"created_at"`
}
