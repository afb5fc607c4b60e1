package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Post      primitive.ObjectID `json:"post" bson:"post"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Author    *AuthorSummary     `json:"author,omitempty" bson:"author,omitempty"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
