package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ichramsyah/bebasblog-backend/controllers"
	"github.com/ichramsyah/bebasblog-backend/middlewares"
	"github.com/ichramsyah/bebasblog-backend/services"
)

type Dependencies struct {
	Auth     *services.AuthService
	Google   controllers.IdentityProvider // nil disables Google login
	Posts    *services.PostService
	Profiles *services.ProfileService
	Images   *services.ImageService
	Hub      *controllers.NotificationHub
	Ping     controllers.PingFunc

	ClientURL   string
	PublicURL   string
	CORSOrigins []string
}

// NewRouter builds the engine with every route mounted under /api.
func NewRouter(d Dependencies) *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.RequestID())
	router.Use(middlewares.Cors(d.CORSOrigins))
	router.MaxMultipartMemory = 8 << 20

	HomeRoutes(router, controllers.NewHomeController(d.Ping))

	api := router.Group("/api")
	AuthRouter(api, controllers.NewAuthController(d.Auth, d.Google, d.ClientURL, d.PublicURL))
	PostRouter(api, d.Auth, controllers.NewPostController(d.Posts, d.Images))
	UserRouter(api, d.Auth, controllers.NewUserController(d.Profiles, d.Images))
	ImageRouter(api, controllers.NewImageController(d.Images))
	NotificationRouter(api, d.Auth, d.Hub)

	return router
}
