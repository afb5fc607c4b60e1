package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
)

func HomeRoutes(incomingRoutes *gin.Engine, home *controllers.HomeController) {
	incomingRoutes.GET("/", home.Home)
	incomingRoutes.GET("/health", home.Health)
}
