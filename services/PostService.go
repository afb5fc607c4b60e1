package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/database"
	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
)

type CreatePostInput struct {
	Description string   `json:"description" form:"description" validate:"required"`
	Images      []string `json:"images" form:"images" validate:"required,min=1,dive,required"`
}

type UpdatePostInput struct {
	Description string `json:"description" form:"description"`
}

type CommentInput struct {
	Content string `json:"content" form:"content" validate:"required"`
}

type PostService struct {
	posts    PostStore
	comments CommentStore
	users    UserStore
	notifier Notifier
}

func NewPostService(posts PostStore, comments CommentStore, users UserStore, notifier Notifier) *PostService {
	return &PostService{posts: posts, comments: comments, users: users, notifier: notifier}
}

func (s *PostService) Create(ctx context.Context, me *models.Principal, in CreatePostInput) (*models.Post, error) {
	in.Description = strings.TrimSpace(in.Description)
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	in.Images = images
	if err := validateInput(in); err != nil {
		return nil, helper.BadRequest("description and at least one image are required")
	}

	post := &models.Post{
		User:        me.ID,
		Images:      in.Images,
		Description: in.Description,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, helper.Internal(err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, helper.Internal(err)
	}
	return posts, nil
}

// Get loads a post; a malformed id is reported the same way as a missing one.
func (s *PostService) Get(ctx context.Context, hexID string) (*models.Post, error) {
	id, ok := helper.ParseObjectID(hexID)
	if !ok {
		return nil, helper.NotFound("post not found")
	}
	post, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, helper.NotFound("post not found")
	}
	if err != nil {
		return nil, helper.Internal(err)
	}
	return post, nil
}

// getOwned loads a post and checks that me owns it.
func (s *PostService) getOwned(ctx context.Context, me *models.Principal, hexID string) (*models.Post, error) {
	post, err := s.Get(ctx, hexID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(me.ID) {
		return nil, helper.Forbidden("you are not allowed to modify this post")
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, me *models.Principal, hexID string, in UpdatePostInput) (*models.Post, error) {
	post, err := s.getOwned(ctx, me, hexID)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" || desc == post.Description {
		return post, nil
	}
	if err := s.posts.UpdateDescription(ctx, post.ID, desc); err != nil {
		return nil, s.storeError(err)
	}
	return s.Get(ctx, hexID)
}

func (s *PostService) Delete(ctx context.Context, me *models.Principal, hexID string) error {
	post, err := s.getOwned(ctx, me, hexID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return s.storeError(err)
	}
	return nil
}

func (s *PostService) Like(ctx context.Context, me *models.Principal, hexID string) (*models.LikeResponse, error) {
	post, err := s.Get(ctx, hexID)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(me.ID) {
		return nil, helper.Conflict("post already liked")
	}

	likes, err := s.posts.AddLike(ctx, post.ID, me.ID)
	if err != nil {
		return nil, s.storeError(err)
	}

	if post.User != me.ID {
		s.notify(ctx, post.User, models.Notification{
			Type: models.NotificationLike,
			Post: post.ID,
		}, me)
	}
	return &models.LikeResponse{Message: "post liked", Likes: likes}, nil
}

func (s *PostService) Unlike(ctx context.Context, me *models.Principal, hexID string) (*models.LikeResponse, error) {
	post, err := s.Get(ctx, hexID)
	if err != nil {
		return nil, err
	}
	if !post.LikedBy(me.ID) {
		return nil, helper.Conflict("post not liked yet")
	}

	likes, err := s.posts.RemoveLike(ctx, post.ID, me.ID)
	if err != nil {
		return nil, s.storeError(err)
	}
	return &models.LikeResponse{Message: "post unliked", Likes: likes}, nil
}

func (s *PostService) AddComment(ctx context.Context, me *models.Principal, hexID string, in CommentInput) (*models.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in); err != nil {
		return nil, helper.BadRequest("comment content is required")
	}

	post, err := s.Get(ctx, hexID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Post:    post.ID,
		User:    me.ID,
		Content: in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, s.storeError(err)
	}

	author := s.actorSummary(ctx, me)
	comment.Author = &author

	if post.User != me.ID {
		s.notify(ctx, post.User, models.Notification{
			Type:    models.NotificationComment,
			Post:    post.ID,
			Comment: comment,
		}, me)
	}
	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, hexID string) ([]models.Comment, error) {
	post, err := s.Get(ctx, hexID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, helper.Internal(err)
	}
	return comments, nil
}

func (s *PostService) notify(ctx context.Context, owner primitive.ObjectID, n models.Notification, actor *models.Principal) {
	if s.notifier == nil {
		return
	}
	n.Actor = s.actorSummary(ctx, actor)
	n.CreatedAt = time.Now().UTC()
	s.notifier.Notify(owner, n)
}

// actorSummary falls back to the principal when the profile cannot be loaded.
func (s *PostService) actorSummary(ctx context.Context, me *models.Principal) models.AuthorSummary {
	if u, err := s.users.FindByID(ctx, me.ID); err == nil {
		return u.Summary()
	}
	return models.AuthorSummary{ID: me.ID, Username: me.Username}
}

// storeError maps the store sentinels that can surface after a post was loaded.
func (s *PostService) storeError(err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return helper.NotFound("post not found")
	case errors.Is(err, database.ErrAlreadyLiked):
		return helper.Conflict("post already liked")
	case errors.Is(err, database.ErrNotLiked):
		return helper.Conflict("post not liked yet")
	}
	return helper.Internal(err)
}
