package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
)

func AuthRouter(incomingRoutes *gin.RouterGroup, auth *controllers.AuthController) {
	incomingRoutes.POST("/auth/register", auth.Register)
	incomingRoutes.POST("/auth/login", auth.Login)
	incomingRoutes.GET("/auth/google", auth.GoogleLogin)
	incomingRoutes.GET("/auth/google/callback", auth.GoogleCallback)
}
