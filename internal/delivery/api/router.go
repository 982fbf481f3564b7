package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/validator"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Sets    *SetHandler
	Results *ResultHandler
	Play    *PlayHandler
}

// NewRouter configures routes and middlewares.
func NewRouter(handlers *Handlers, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	validator.Setup()

	router := gin.New()
	router.Use(RequestIDMiddleware(), Logger(logger), Recovery(logger))

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID", HeaderUserID}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.NoRoute(notFound)

	router.GET("/health", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	sets := router.Group("/api/v1/sets")
	{
		sets.GET("", handlers.Sets.List)
		sets.POST("", handlers.Sets.Create)
		sets.GET("/:id", handlers.Sets.Get)
		sets.DELETE("/:id", handlers.Sets.Delete)
		sets.GET("/:id/top", handlers.Sets.Top)
	}

	router.GET("/api/v1/users/:id/results", handlers.Results.History)

	router.GET("/ws/sets/:id/play", handlers.Play.Play)

	return router
}
