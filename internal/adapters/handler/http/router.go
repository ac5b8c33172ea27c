package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/presence-analyzer/docs"
	"github.com/comitanigiacomo/presence-analyzer/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

const IndexPage = "/presence_weekday.html"

type RouterDependencies struct {
	PresenceHandler *PresenceHandler
	DataSource      domain.Fingerprinter
	Redis           *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration
	StaticDir       string
	StartTime       time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestIDMiddleware())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateLimitWindow))
	}

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, IndexPage)
	})

	router.GET("/health", func(c *gin.Context) {
		dataStatus := "readable"
		if deps.DataSource != nil {
			if _, err := deps.DataSource.Fingerprint(c.Request.Context()); err != nil {
				dataStatus = "unreadable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		status := "ok"
		if dataStatus == "unreadable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
			status = "error"
		}

		c.JSON(statusCode, gin.H{
			"status":      status,
			"data_source": dataStatus,
			"redis":       redisStatus,
			"uptime":      time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	deps.PresenceHandler.RegisterRoutes(apiV1)

	if deps.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(deps.StaticDir))))
	}

	return router
}
