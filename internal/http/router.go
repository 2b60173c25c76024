package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"converso/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	verifier *service.TokenVerifier,
	chatH *ChatHandler,
	profileH *ProfileHandler,
	langH *LanguageHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/languages", langH.ListLanguages)

	auth := AuthMiddleware(verifier)

	lang := r.Group("/language", auth)
	lang.GET("", langH.GetSelection)
	lang.PUT("", langH.PutSelection)

	r.POST("/session", auth, chatH.CreateSession)
	r.GET("/session/:id", auth, chatH.GetSession)
	r.GET("/session/:id/messages", auth, chatH.GetMessages)
	r.POST("/session/:id/message", auth, chatH.PostTurn)

	profile := r.Group("/profile", auth)
	profile.GET("", profileH.GetProfile)
	profile.PUT("", profileH.UpdateProfile)
	profile.GET("/rating-history", profileH.RatingHistory)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
