package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
	"github.com/ichramsyah/bebasblog-backend/services"
)

type UserController struct {
	profiles *services.ProfileService
	images   *services.ImageService
}

func NewUserController(profiles *services.ProfileService, images *services.ImageService) *UserController {
	return &UserController{profiles: profiles, images: images}
}

func (u *UserController) GetMe(c *gin.Context, me *models.Principal) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := u.profiles.GetOwn(ctx, me)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe takes JSON or multipart; a "profile_picture" file wins over a
// profile_picture_url value.
func (u *UserController) UpdateMe(c *gin.Context, me *models.Principal) {
	var in services.UpdateProfileInput
	if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if isMultipart(c) {
		if file, err := c.FormFile("profile_picture"); err == nil {
			url, err := u.images.Upload(ctx, file)
			if err != nil {
				helper.RespondError(c, err)
				return
			}
			in.ProfilePictureURL = url
		}
	}

	profile, err := u.profiles.UpdateOwn(ctx, me, in)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (u *UserController) ChangePassword(c *gin.Context, me *models.Principal) {
	var in services.ChangePasswordInput
	if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := u.profiles.ChangePassword(ctx, me, in); err != nil {
		helper.RespondError(c, err)
		return
	}
	respondMessage(c, "password updated")
}

func (u *UserController) GetProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := u.profiles.PublicProfile(ctx, c.Param("username"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (u *UserController) GetUserPosts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := u.profiles.PostsByUsername(ctx, c.Param("username"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
