package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account origins.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id"`
	Username          string             `json:"username" bson:"username"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"-" bson:"password,omitempty"`
	ProfilePictureURL string             `json:"profile_picture_url" bson:"profile_picture_url"`
	Bio               string             `json:"bio" bson:"bio"`
	Provider          string             `json:"provider" bson:"provider"`
	ProviderID        string             `json:"-" bson:"provider_id,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HasPassword is false for federated accounts, which can only sign in through their provider.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

func (u *User) Principal() *Principal {
	return &Principal{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (u *User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Username: u.Username, ProfilePictureURL: u.ProfilePictureURL}
}

// Principal is the authenticated caller, resolved once per request and handed
// to every service call that needs an identity.
type Principal struct {
	ID       primitive.ObjectID
	Username string
	Email    string
}

// AuthorSummary is the slice of a user joined into posts, comments and notifications.
type AuthorSummary struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id"`
	Username          string             `json:"username" bson:"username"`
	ProfilePictureURL string             `json:"profile_picture_url" bson:"profile_picture_url"`
}

// ProfileUpdate carries the fields changed by a profile edit; nil means unchanged.
type ProfileUpdate struct {
	Username          *string
	Bio               *string
	ProfilePictureURL *string
}

// ExternalProfile is what an identity provider tells us about a user.
type ExternalProfile struct {
	Provider    string
	ProviderID  string
	Email       string
	DisplayName string
	PictureURL  string
}

type AuthResponse struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Token    string             `json:"token"`
}

type ProfileResponse struct {
	ID                primitive.ObjectID `json:"_id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	Bio               string             `json:"bio"`
	ProfilePictureURL string             `json:"profile_picture_url"`
	CreatedAt         time.Time          `json:"createdAt"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
	}
}

type PublicProfile struct {
	ID                primitive.ObjectID `json:"_id"`
	Username          string             `json:"username"`
	Bio               string             `json:"bio"`
	ProfilePictureURL string             `json:"profile_picture_url"`
	CreatedAt         time.Time          `json:"createdAt"`
	PostCount         int64              `json:"postCount"`
	TotalLikes        int64              `json:"totalLikes"`
}
