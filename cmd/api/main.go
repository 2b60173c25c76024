package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"converso/internal/agent"
	"converso/internal/config"
	"converso/internal/db"
	apihttp "converso/internal/http"
	"converso/internal/repository"
	"converso/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Perfil en Postgres cuando hay DATABASE_URL; si no, en memoria.
	var profileRepo repository.ProfileRepository = repository.NewMemoryProfileRepository()
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		profileRepo = repository.NewPgProfileRepository(pool)
	}

	// Selección de idioma en redis cuando está disponible.
	var selectionRepo repository.LanguageSelectionRepository = repository.NewMemoryLanguageSelectionRepository()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			selectionRepo = repository.NewRedisLanguageSelectionRepository(redisClient)
		}
		cancel()
	}

	var verifier *service.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = service.NewTokenVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("jwt secret not configured, running with anonymous user")
	}

	sessionRepo := repository.NewMemorySessionRepository()
	exchanger := agent.NewHTTPClient(cfg.AgentWebhookURL, cfg.AgentTimeout(), logger)
	chatSvc := service.NewChatService(logger, sessionRepo, exchanger)
	profileSvc := service.NewProfileService(logger, profileRepo, chatSvc)

	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	profileHandler := apihttp.NewProfileHandler(logger, profileSvc)
	langHandler := apihttp.NewLanguageHandler(logger, selectionRepo)
	router := apihttp.NewRouter(logger, verifier, chatHandler, profileHandler, langHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Duration("agent_timeout", cfg.AgentTimeout()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
