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

// usernameAttempts bounds the retries when a generated username collides.
const usernameAttempts = 5

type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=30,handle"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthService is the auth gateway: local credentials, bearer tokens and
// federated sign-in all end up here.
type AuthService struct {
	users          UserStore
	tokens         *helper.TokenService
	defaultPicture string
	defaultBio     string
}

func NewAuthService(users UserStore, tokens *helper.TokenService, defaultPicture, defaultBio string) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		defaultPicture: defaultPicture,
		defaultBio:     defaultBio,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = helper.NormalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := helper.HashPassword(in.Password)
	if err != nil {
		return nil, helper.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Username:          in.Username,
		Email:             in.Email,
		Password:          hash,
		ProfilePictureURL: s.defaultPicture,
		Provider:          models.ProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, duplicateOrInternal(err)
	}
	return s.authResponse(user)
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return helper.Conflict("email is already registered")
	} else if !errors.Is(err, database.ErrNotFound) {
		return helper.Internal(err)
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return helper.Conflict("username is already taken")
	} else if !errors.Is(err, database.ErrNotFound) {
		return helper.Internal(err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.AuthResponse, error) {
	in.Email = helper.NormalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, helper.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, helper.Internal(err)
	}
	if !helper.VerifyPassword(user.Password, in.Password) {
		return nil, helper.Unauthorized("invalid email or password")
	}
	return s.authResponse(user)
}

// Authenticate resolves an Authorization header to the caller.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*models.Principal, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, helper.Unauthorized("not authorized, no token")
	}
	return s.AuthenticateToken(ctx, strings.TrimSpace(token))
}

func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (*models.Principal, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, helper.Unauthorized("not authorized, token failed")
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, helper.Unauthorized("not authorized, user not found")
	}
	if err != nil {
		return nil, helper.Internal(err)
	}
	return user.Principal(), nil
}

// FederatedLogin finds the local account for an external identity by email,
// creating a password-less one on first sight, and issues a normal token.
func (s *AuthService) FederatedLogin(ctx context.Context, profile models.ExternalProfile) (*models.AuthResponse, error) {
	email := helper.NormalizeEmail(profile.Email)
	if email == "" {
		return nil, helper.BadRequest("email not provided by identity provider")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return s.authResponse(user)
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, helper.Internal(err)
	}

	picture := profile.PictureURL
	if picture == "" {
		picture = s.defaultPicture
	}
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		user = &models.User{
			Username:          helper.GenerateUsername(profile.DisplayName, email),
			Email:             email,
			ProfilePictureURL: picture,
			Bio:               s.defaultBio,
			Provider:          profile.Provider,
			ProviderID:        profile.ProviderID,
		}
		err = s.users.Create(ctx, user)
		if err == nil {
			return s.authResponse(user)
		}
		if errors.Is(err, database.ErrDuplicateEmail) {
			// Created concurrently by another callback.
			existing, ferr := s.users.FindByEmail(ctx, email)
			if ferr != nil {
				return nil, helper.Internal(ferr)
			}
			return s.authResponse(existing)
		}
		if !errors.Is(err, database.ErrDuplicateUsername) {
			return nil, helper.Internal(err)
		}
	}
	return nil, helper.Internal(fmt.Errorf("no free username after %d attempts: %w", usernameAttempts, err))
}

func (s *AuthService) authResponse(u *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, helper.Internal(err)
	}
	return &models.AuthResponse{ID: u.ID, Username: u.Username, Email: u.Email, Token: token}, nil
}

func duplicateOrInternal(err error) error {
	switch {
	case errors.Is(err, database.ErrDuplicateEmail):
		return helper.Conflict("email is already registered")
	case errors.Is(err, database.ErrDuplicateUsername):
		return helper.Conflict("username is already taken")
	}
	return helper.Internal(err)
}
