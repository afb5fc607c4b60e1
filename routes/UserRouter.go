package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
	"github.com/ichramsyah/bebasblog-backend/middlewares"
)

func UserRouter(incomingRoutes *gin.RouterGroup, auth middlewares.Authenticator, users *controllers.UserController) {
	incomingRoutes.GET("/users/me", middlewares.RequireAuth(auth, users.GetMe))
	incomingRoutes.PUT("/users/me", middlewares.RequireAuth(auth, users.UpdateMe))
	incomingRoutes.PUT("/users/me/password", middlewares.RequireAuth(auth, users.ChangePassword))

	incomingRoutes.GET("/users/:username", users.GetProfile)
	incomingRoutes.GET("/users/:username/posts", users.GetUserPosts)
}
