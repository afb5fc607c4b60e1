package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ichramsyah/bebasblog-backend/models"
)

// withoutPassword is the default projection for user reads.
var withoutPassword = bson.M{"password": 0}

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(UserCollection)}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", translateWriteError(err))
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id}, withoutPassword)
}

// FindByIDWithPassword also loads the password hash, for credential checks.
func (s *UserStore) FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id}, nil)
}

// FindByEmail loads the password hash, since its callers verify credentials.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email}, nil)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username}, withoutPassword)
}

func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.ProfilePictureURL != nil {
		set["profile_picture_url"] = *update.ProfilePictureURL
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var user models.User
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", translateWriteError(notFound(err)))
	}
	return &user, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  hash,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M, projection bson.M) (*models.User, error) {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var user models.User
	if err := s.coll.FindOne(ctx, filter, opts).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
