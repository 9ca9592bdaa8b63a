package http

import (
	"slices"
	"time"

	"party-cards/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(rooms RoomDirectory, ws gin.HandlerFunc, cfg config.Config, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", HealthHandler)
	r.GET("/ws", ws)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/config", GetRulesHandler(cfg))
	api.GET("/rooms", ListRoomsHandler(rooms, log))
	api.GET("/rooms/:code", GetRoomHandler(rooms, log))

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Origin"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	}
}
