package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification is pushed over the websocket to the owner of a post.
type Notification struct {
	Type      string             `json:"type"`
	Post      primitive.ObjectID `json:"post"`
	Actor     AuthorSummary      `json:"actor"`
	Comment   *Comment           `json:"comment,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}
