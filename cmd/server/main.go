package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friendchat/config"
	"friendchat/internal/handler"
	"friendchat/internal/model"
	"friendchat/internal/repository"
	"friendchat/internal/service"
	"friendchat/pkg/auth"
	dbPkg "friendchat/pkg/db"
	"friendchat/pkg/logger"
	redisPkg "friendchat/pkg/redis"
	"friendchat/pkg/response"
	"friendchat/pkg/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== friendchat starting ===")
	log.Info("server configuration",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.String("log_level", cfg.Log.Level),
	)

	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("close database failed", zap.Error(err))
		}
	}()

	if err := dbPkg.AutoMigrate(&model.Relationship{}, &model.Notification{}, &model.Message{}); err != nil {
		log.Fatal("auto migration failed", zap.Error(err))
	}

	// Presence is best-effort: a missing redis degrades it, nothing else.
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("redis connection failed, presence disabled", zap.Error(err))
	} else {
		defer redisPkg.Close()
	}
	presence := redisPkg.NewPresenceStore()

	verifier := auth.NewVerifier(cfg.JWT)
	registry := ws.NewRegistry()

	relationshipRepo := repository.NewRelationshipRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	friendSvc := service.NewFriendService(relationshipRepo, notificationRepo, registry)
	messageSvc := service.NewMessageService(messageRepo, relationshipRepo, registry)

	friendHandler := handler.NewFriendHandler(friendSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	presenceHandler := handler.NewPresenceHandler(presence)
	wsHandler := ws.NewHandler(registry, verifier, presence, cfg.WebSocket)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.Middleware())
	router.Use(logger.Recovery())

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		} else if err := redisPkg.HealthCheck(); err != nil {
			status = "redis-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(verifier))
	{
		messages := v1.Group("/messages")
		{
			messages.POST("/send", messageHandler.Send)
		}

		conversations := v1.Group("/conversations")
		{
			conversations.GET("", messageHandler.Digest)
			conversations.GET("/:user_id/messages", messageHandler.History)
			conversations.GET("/:user_id/latest", messageHandler.Latest)
		}

		friends := v1.Group("/friends")
		{
			friends.POST("/request", friendHandler.Request)
			friends.POST("/respond", friendHandler.Respond)
		}

		v1.GET("/notifications", notificationHandler.List)
		v1.GET("/users/:user_id/presence", presenceHandler.Get)
	}

	// The websocket handshake authenticates itself from the token query
	// parameter, so it sits outside the auth middleware.
	router.GET("/ws", wsHandler.Serve)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
