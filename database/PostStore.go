package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ichramsyah/bebasblog-backend/models"
)

type PostStore struct {
	posts    *mongo.Collection
	comments *mongo.Collection
	tx       *Transactor
}

func NewPostStore(db *mongo.Database, tx *Transactor) *PostStore {
	return &PostStore{
		posts:    db.Collection(PostCollection),
		comments: db.Collection(CommentCollection),
		tx:       tx,
	}
}

// authorStages joins the owner's public fields into "author".
func authorStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": UserCollection,
			"let":  bson.M{"uid": "$user"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$uid"}}}},
				bson.M{"$project": bson.M{"username": 1, "profile_picture_url": 1}},
			},
			"as": "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
	}
}

func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.Comments == nil {
		p.Comments = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	author := p.Author
	p.Author = nil
	_, err := s.posts.InsertOne(ctx, p)
	p.Author = author
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// List returns every post, newest first, with the owner joined in.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	return s.aggregate(ctx, bson.M{})
}

// ListByUser returns a user's posts, newest first.
func (s *PostStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return s.aggregate(ctx, bson.M{"user": userID})
}

func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	posts, err := s.aggregate(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return &posts[0], nil
}

func (s *PostStore) aggregate(ctx context.Context, match bson.M) ([]models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	pipeline = append(pipeline, authorStages()...)

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}
	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) error {
	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"description": description,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post together with its comments.
func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.comments.DeleteMany(ctx, bson.M{"post": id}); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddLike appends userID to the likes set unless it is already there.
func (s *PostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"_id": postID, "likes": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"likes": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return s.updateLikes(ctx, postID, filter, update, ErrAlreadyLiked)
}

func (s *PostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"_id": postID, "likes": userID}
	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return s.updateLikes(ctx, postID, filter, update, ErrNotLiked)
}

func (s *PostStore) updateLikes(ctx context.Context, postID primitive.ObjectID, filter, update bson.M, conflict error) ([]primitive.ObjectID, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var post models.Post
	err := s.posts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		n, cerr := s.posts.CountDocuments(ctx, bson.M{"_id": postID})
		if cerr != nil {
			return nil, fmt.Errorf("count post: %w", cerr)
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		return nil, conflict
	}
	if err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	return post.Likes, nil
}

// Stats counts a user's posts and sums the size of their like sets.
func (s *PostStore) Stats(ctx context.Context, userID primitive.ObjectID) (models.PostStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
		{{Key: "$project", Value: bson.M{
			"likeCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"postCount":  bson.M{"$sum": 1},
			"totalLikes": bson.M{"$sum": "$likeCount"},
		}}},
	}

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return models.PostStats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	var rows []models.PostStats
	if err := cursor.All(ctx, &rows); err != nil {
		return models.PostStats{}, fmt.Errorf("decode stats: %w", err)
	}
	if len(rows) == 0 {
		return models.PostStats{}, nil
	}
	return rows[0], nil
}
