package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
	"github.com/ichramsyah/bebasblog-backend/middlewares"
)

func NotificationRouter(incomingRoutes *gin.RouterGroup, auth middlewares.Authenticator, hub *controllers.NotificationHub) {
	incomingRoutes.GET("/ws", middlewares.RequireAuthOrQueryToken(auth, hub.HandleWS))
}
