package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
	"github.com/ichramsyah/bebasblog-backend/middlewares"
)

func PostRouter(incomingRoutes *gin.RouterGroup, auth middlewares.Authenticator, posts *controllers.PostController) {
	incomingRoutes.GET("/posts", posts.GetPosts)
	incomingRoutes.POST("/posts", middlewares.RequireAuth(auth, posts.CreatePost))
	incomingRoutes.GET("/posts/:id", posts.GetPost)
	incomingRoutes.PUT("/posts/:id", middlewares.RequireAuth(auth, posts.UpdatePost))
	incomingRoutes.DELETE("/posts/:id", middlewares.RequireAuth(auth, posts.DeletePost))

	incomingRoutes.POST("/posts/:id/like", middlewares.RequireAuth(auth, posts.LikePost))
	incomingRoutes.DELETE("/posts/:id/like", middlewares.RequireAuth(auth, posts.UnlikePost))

	incomingRoutes.POST("/posts/:id/comments", middlewares.RequireAuth(auth, posts.AddComment))
	incomingRoutes.GET("/posts/:id/comments", posts.GetComments)
}
