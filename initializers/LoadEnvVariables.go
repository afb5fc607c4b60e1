package initializers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvVariables loads a .env file into the process environment when one exists.
func LoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}
}

type Config struct {
	Port     string
	GinMode  string
	MongoURI string
	DBName   string
	// MongoTransactions needs a replica set; turn it off for a standalone mongod.
	MongoTransactions bool

	JWTSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	ClientURL   string
	PublicURL   string
	CORSOrigins []string

	DefaultProfilePicture string
	DefaultBio            string
}

// GoogleEnabled reports whether federated login has credentials configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "5000"),
		GinMode:               os.Getenv("GIN_MODE"),
		MongoURI:              os.Getenv("MONGO_URI"),
		DBName:                getEnv("DB_NAME", "bebasblog"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
		ClientURL:             strings.TrimSuffix(getEnv("CLIENT_URL", "http://localhost:3000"), "/"),
		DefaultProfilePicture: getEnv("DEFAULT_PROFILE_PICTURE", "default_profile_pic_url"),
		DefaultBio:            getEnv("DEFAULT_BIO", "Bebas Blog user"),
	}

	cfg.PublicURL = strings.TrimSuffix(getEnv("PUBLIC_URL", "http://localhost:"+cfg.Port), "/")
	cfg.GoogleCallbackURL = getEnv("GOOGLE_CALLBACK_URL", cfg.PublicURL+"/api/auth/google/callback")

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", cfg.ClientURL), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	tx, err := strconv.ParseBool(getEnv("MONGO_TRANSACTIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("MONGO_TRANSACTIONS: %w", err)
	}
	cfg.MongoTransactions = tx

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not defined in environment variables")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not defined in environment variables")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
