// Package services holds the application logic between the HTTP controllers
// and the MongoDB stores. Every operation takes the caller's identity as an
// explicit *models.Principal when it needs one.
package services

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/models"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	Stats(ctx context.Context, userID primitive.ObjectID) (models.PostStats, error)
}

type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
}

type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, src io.Reader) (primitive.ObjectID, error)
	Open(ctx context.Context, id primitive.ObjectID) (io.ReadCloser, string, error)
}

// Notifier delivers realtime events to a user. Delivery is best effort.
type Notifier interface {
	Notify(userID primitive.ObjectID, n models.Notification)
}
