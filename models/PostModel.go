package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id"`
	User        primitive.ObjectID   `json:"user" bson:"user"`
	Author      *AuthorSummary       `json:"author,omitempty" bson:"author,omitempty"`
	Images      []string             `json:"images" bson:"images"`
	Description string               `json:"description" bson:"description"`
	Likes       []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments    []primitive.ObjectID `json:"comments" bson:"comments"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (p *Post) OwnedBy(userID primitive.ObjectID) bool {
	return p.User == userID
}

func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// PostStats is the per-user aggregate shown on public profiles.
type PostStats struct {
	PostCount  int64 `bson:"postCount"`
	TotalLikes int64 `bson:"totalLikes"`
}

type LikeResponse struct {
	Message string               `json:"message"`
	Likes   []primitive.ObjectID `json:"likes"`
}
