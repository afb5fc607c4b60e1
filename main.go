package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ichramsyah/bebasblog-backend/controllers"
	"github.com/ichramsyah/bebasblog-backend/database"
	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/initializers"
	"github.com/ichramsyah/bebasblog-backend/routes"
	"github.com/ichramsyah/bebasblog-backend/services"
)

func init() {
	initializers.LoadEnvVariables()
}

func main() {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client, err := database.DBinstance(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal(err)
	}
	cancel()

	tx := database.NewTransactor(client, cfg.MongoTransactions)
	users := database.NewUserStore(db)
	posts := database.NewPostStore(db, tx)
	comments := database.NewCommentStore(db, tx)
	images := database.NewImageStore(db)

	hub := controllers.NewNotificationHub(cfg.CORSOrigins)

	deps := routes.Dependencies{
		Auth:     services.NewAuthService(users, helper.NewTokenService(cfg.JWTSecret), cfg.DefaultProfilePicture, cfg.DefaultBio),
		Posts:    services.NewPostService(posts, comments, users, hub),
		Profiles: services.NewProfileService(users, posts),
		Images:   services.NewImageService(images, cfg.PublicURL),
		Hub:      hub,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		ClientURL:   cfg.ClientURL,
		PublicURL:   cfg.PublicURL,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.GoogleEnabled() {
		deps.Google = services.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	} else {
		log.Println("GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, google login disabled")
	}

	router := routes.NewRouter(deps)

	log.Printf("listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
