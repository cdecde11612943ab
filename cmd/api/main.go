package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"tuiter/internal/config"
	"tuiter/internal/db"
	apihttp "tuiter/internal/http"
	"tuiter/internal/repository"
	"tuiter/internal/service"

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

	var (
		messageRepo      repository.MessageRepository
		groupRepo        repository.GroupRepository
		groupMessageRepo repository.GroupMessageRepository
		userRepo         repository.UserRepository
	)

	switch cfg.DBDriver {
	case "mongo":
		client, database, err := db.NewMongoDatabase(ctx, cfg)
		if err != nil {
			logger.Fatal("mongo connect", zap.Error(err))
		}
		defer client.Disconnect(ctx)

		messageRepo = repository.NewMongoMessageRepository(database)
		groupRepo = repository.NewMongoGroupRepository(database)
		groupMessageRepo = repository.NewMongoGroupMessageRepository(database)
		userRepo = repository.NewMongoUserRepository(database)
	default:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()

		messageRepo = repository.NewPgMessageRepository(pool)
		groupRepo = repository.NewPgGroupRepository(pool)
		groupMessageRepo = repository.NewPgGroupMessageRepository(pool)
		userRepo = repository.NewPgUserRepository(pool)
	}

	groupSvc := service.NewGroupService(groupRepo, groupMessageRepo, userRepo)

	var guard service.MembershipGuard = groupSvc
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
			ttl := time.Duration(cfg.MembershipCacheTTLSeconds) * time.Second
			guard = service.NewRedisMembershipCache(redisClient, ttl, groupSvc)
		}
		cancel()
	}

	messageSvc := service.NewMessageService(messageRepo, userRepo)
	groupMessageSvc := service.NewGroupMessageService(groupMessageRepo, userRepo, guard)
	conversationSvc := service.NewConversationService(messageSvc, groupMessageSvc)

	var jwtSvc *service.JWTService
	if cfg.JWTSecret != "" {
		jwtSvc = service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	} else {
		logger.Warn("jwt secret not configured; caller auth disabled")
	}

	messageHandler := apihttp.NewMessageHandler(logger, messageSvc, conversationSvc)
	groupHandler := apihttp.NewGroupHandler(logger, groupSvc)
	groupMessageHandler := apihttp.NewGroupMessageHandler(logger, groupMessageSvc, groupSvc, conversationSvc)
	router := apihttp.NewRouter(logger, jwtSvc, messageHandler, groupHandler, groupMessageHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("driver", cfg.DBDriver))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
