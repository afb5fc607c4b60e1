package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
	"github.com/ichramsyah/bebasblog-backend/services"
)

type PostController struct {
	posts  *services.PostService
	images *services.ImageService
}

func NewPostController(posts *services.PostService, images *services.ImageService) *PostController {
	return &PostController{posts: posts, images: images}
}

// CreatePost accepts multipart (uploaded "images" files plus optional "images"
// URL values) or a JSON body with image URLs.
func (p *PostController) CreatePost(c *gin.Context, me *models.Principal) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var in services.CreatePostInput
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			helper.RespondError(c, helper.BadRequest("invalid multipart form"))
			return
		}
		in.Description = strings.Join(form.Value["description"], "")
		in.Images = append(in.Images, form.Value["images"]...)

		files := form.File["images"]
		if len(files) > 0 {
			// nothing gets uploaded for a post that would be rejected anyway
			if strings.TrimSpace(in.Description) == "" {
				helper.RespondError(c, helper.BadRequest("description and at least one image are required"))
				return
			}
			urls, err := p.images.UploadAll(ctx, files)
			if err != nil {
				helper.RespondError(c, err)
				return
			}
			in.Images = append(in.Images, urls...)
		}
	} else if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}

	post, err := p.posts.Create(ctx, me, in)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (p *PostController) GetPosts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := p.posts.List(ctx)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (p *PostController) GetPost(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := p.posts.Get(ctx, c.Param("id"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (p *PostController) UpdatePost(c *gin.Context, me *models.Principal) {
	var in services.UpdatePostInput
	if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := p.posts.Update(ctx, me, c.Param("id"), in)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (p *PostController) DeletePost(c *gin.Context, me *models.Principal) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := p.posts.Delete(ctx, me, c.Param("id")); err != nil {
		helper.RespondError(c, err)
		return
	}
	respondMessage(c, "post deleted")
}

func (p *PostController) LikePost(c *gin.Context, me *models.Principal) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := p.posts.Like(ctx, me, c.Param("id"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (p *PostController) UnlikePost(c *gin.Context, me *models.Principal) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := p.posts.Unlike(ctx, me, c.Param("id"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (p *PostController) AddComment(c *gin.Context, me *models.Principal) {
	var in services.CommentInput
	if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := p.posts.AddComment(ctx, me, c.Param("id"), in)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (p *PostController) GetComments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := p.posts.ListComments(ctx, c.Param("id"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
