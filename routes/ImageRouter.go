package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
)

func ImageRouter(incomingRoutes *gin.RouterGroup, images *controllers.ImageController) {
	incomingRoutes.GET("/images/:id", images.GetImage)
}
