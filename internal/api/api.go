package api

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"readaloud/internal/recorder"
	"readaloud/internal/session"
	"readaloud/pkg/utils"

	health_module "readaloud/internal/api/modules/health"
	recordings_module "readaloud/internal/api/modules/recordings"
)

// NewEngine builds the gin engine with all middleware and modules registered
func NewEngine(cfg *utils.Config, svc *recorder.Service) (*gin.Engine, error) {
	secret := cfg.Get("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}

	// Add app level settings/routes
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Cookie-backed sessions carry the opaque per-user identifier
	engine.Use(session.Middleware(secret))

	// Base group '/api' for service routes
	baseGroup := engine.Group("/api")
	health_module.RegisterRoutes(baseGroup)

	// The recording workflow lives at the root so the client contract
	// (upload-sentences, upload-audio, download-recordings) stays stable
	recordings_module.RegisterRoutes(&engine.RouterGroup, svc)

	return engine, nil
}

// Start runs the API server until it fails
func Start(cfg *utils.Config, svc *recorder.Service) {
	port := cfg.GetWithDefault("API_PORT", "8080")

	engine, err := NewEngine(cfg, svc)
	if err != nil {
		log.Fatal("[API-MAIN]: ", err)
	}

	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
