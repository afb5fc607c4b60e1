package middlewares

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
)

const authTimeout = 10 * time.Second

type Authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*models.Principal, error)
	AuthenticateToken(ctx context.Context, token string) (*models.Principal, error)
}

// AuthedHandler is a gin handler that receives the caller it was authorized for.
type AuthedHandler func(c *gin.Context, me *models.Principal)

// RequireAuth resolves the bearer token before calling next; any failure answers 401.
func RequireAuth(auth Authenticator, next AuthedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), authTimeout)
		me, err := auth.Authenticate(ctx, c.GetHeader("Authorization"))
		cancel()
		if err != nil {
			helper.RespondError(c, err)
			return
		}
		next(c, me)
	}
}

// RequireAuthOrQueryToken also accepts ?token=, since browsers cannot set
// headers on a websocket handshake.
func RequireAuthOrQueryToken(auth Authenticator, next AuthedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), authTimeout)
		var (
			me  *models.Principal
			err error
		)
		if token := c.Query("token"); token != "" {
			me, err = auth.AuthenticateToken(ctx, token)
		} else {
			me, err = auth.Authenticate(ctx, c.GetHeader("Authorization"))
		}
		cancel()
		if err != nil {
			helper.RespondError(c, err)
			return
		}
		next(c, me)
	}
}
