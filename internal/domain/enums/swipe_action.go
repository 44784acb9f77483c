package enums

type SwipeAction string

const (
	SwipeActionLike    SwipeAction = "like"
	SwipeActionDislike SwipeAction = "dislike"
)
