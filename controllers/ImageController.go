package controllers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/services"
)

type ImageController struct {
	images *services.ImageService
}

func NewImageController(images *services.ImageService) *ImageController {
	return &ImageController{images: images}
}

// GetImage streams a stored image with the content type it was uploaded as.
func (i *ImageController) GetImage(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	file, contentType, err := i.images.Open(ctx, c.Param("id"))
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		log.Printf("stream image %s: %v", c.Param("id"), err)
	}
}
