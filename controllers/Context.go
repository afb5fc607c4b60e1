package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/helper"
)

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bind decodes a JSON or form body; an empty body leaves in untouched.
func bind(c *gin.Context, in interface{}) error {
	if err := c.ShouldBind(in); err != nil && !errors.Is(err, io.EOF) {
		return helper.BadRequest("invalid request body")
	}
	return nil
}

func respondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
