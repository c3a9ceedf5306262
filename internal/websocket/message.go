package websocket

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Activity feed actions published by the services.
const (
	ActionPostCreated   = "post.created"
	ActionPostLiked     = "post.liked"
	ActionPostUnliked   = "post.unliked"
	ActionPostCommented = "post.commented"
	ActionPostDeleted   = "post.deleted"
	ActionUserFollowed  = "user.followed"
)
