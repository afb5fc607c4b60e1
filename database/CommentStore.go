package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ichramsyah/bebasblog-backend/models"
)

type CommentStore struct {
	comments *mongo.Collection
	posts    *mongo.Collection
	tx       *Transactor
}

func NewCommentStore(db *mongo.Database, tx *Transactor) *CommentStore {
	return &CommentStore{
		comments: db.Collection(CommentCollection),
		posts:    db.Collection(PostCollection),
		tx:       tx,
	}
}

// Create inserts the comment and appends its id to the post in one transaction.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	author := c.Author
	c.Author = nil
	defer func() { c.Author = author }()

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		res, err := s.posts.UpdateOne(ctx, bson.M{"_id": c.Post}, bson.M{
			"$push": bson.M{"comments": c.ID},
			"$set":  bson.M{"updatedAt": now},
		})
		if err != nil {
			return fmt.Errorf("push comment: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		if _, err := s.comments.InsertOne(ctx, c); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		return nil
	})
}

// ListByPost returns a post's comments, oldest first, with their authors joined in.
func (s *CommentStore) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post": postID}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
	}
	pipeline = append(pipeline, authorStages()...)

	cursor, err := s.comments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate comments: %w", err)
	}
	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}
