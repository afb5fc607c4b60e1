package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ichramsyah/bebasblog-backend/database"
	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
)

// UpdateProfileInput fields are optional; empty means keep the current value.
type UpdateProfileInput struct {
	Username          string `json:"username" form:"username" validate:"omitempty,min=3,max=30,handle"`
	Bio               string `json:"bio" form:"bio" validate:"max=500"`
	ProfilePictureURL string `json:"profile_picture_url" form:"profile_picture_url"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=6"`
}

type ProfileService struct {
	users UserStore
	posts PostStore
}

func NewProfileService(users UserStore, posts PostStore) *ProfileService {
	return &ProfileService{users: users, posts: posts}
}

func (s *ProfileService) GetOwn(ctx context.Context, me *models.Principal) (*models.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, me.ID)
	if err != nil {
		return nil, userError(err)
	}
	resp := models.ToProfileResponse(user)
	return &resp, nil
}

func (s *ProfileService) UpdateOwn(ctx context.Context, me *models.Principal, in UpdateProfileInput) (*models.ProfileResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Bio = strings.TrimSpace(in.Bio)
	in.ProfilePictureURL = strings.TrimSpace(in.ProfilePictureURL)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, me.ID)
	if err != nil {
		return nil, userError(err)
	}

	var update models.ProfileUpdate
	if in.Username != "" && in.Username != user.Username {
		existing, err := s.users.FindByUsername(ctx, in.Username)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, helper.Conflict("username is already taken")
		case err != nil && !errors.Is(err, database.ErrNotFound):
			return nil, helper.Internal(err)
		}
		update.Username = &in.Username
	}
	if in.Bio != "" {
		update.Bio = &in.Bio
	}
	if in.ProfilePictureURL != "" {
		update.ProfilePictureURL = &in.ProfilePictureURL
	}

	updated, err := s.users.UpdateProfile(ctx, me.ID, update)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, helper.Conflict("username is already taken")
		}
		return nil, userError(err)
	}
	resp := models.ToProfileResponse(updated)
	return &resp, nil
}

// ChangePassword checks the current password, then stores a fresh hash of the new one.
func (s *ProfileService) ChangePassword(ctx context.Context, me *models.Principal, in ChangePasswordInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	user, err := s.users.FindByIDWithPassword(ctx, me.ID)
	if err != nil {
		return userError(err)
	}
	if !helper.VerifyPassword(user.Password, in.CurrentPassword) {
		return helper.Unauthorized("current password is incorrect")
	}

	hash, err := helper.HashPassword(in.NewPassword)
	if err != nil {
		return helper.Internal(fmt.Errorf("hash password: %w", err))
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return userError(err)
	}
	return nil
}

func (s *ProfileService) PostsByUsername(ctx context.Context, username string) ([]models.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, userError(err)
	}
	posts, err := s.posts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, helper.Internal(err)
	}
	return posts, nil
}

func (s *ProfileService) PublicProfile(ctx context.Context, username string) (*models.PublicProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, userError(err)
	}
	stats, err := s.posts.Stats(ctx, user.ID)
	if err != nil {
		return nil, helper.Internal(err)
	}
	return &models.PublicProfile{
		ID:                user.ID,
		Username:          user.Username,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt,
		PostCount:         stats.PostCount,
		TotalLikes:        stats.TotalLikes,
	}, nil
}

func userError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return helper.NotFound("user not found")
	}
	return helper.Internal(err)
}
