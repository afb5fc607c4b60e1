package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc checks that a backing service answers.
type PingFunc func(ctx context.Context) error

type HomeController struct {
	ping PingFunc
}

func NewHomeController(ping PingFunc) *HomeController {
	return &HomeController{ping: ping}
}

func (h *HomeController) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Bebas Blog API is running"})
}

func (h *HomeController) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			log.Printf("health: database ping: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
