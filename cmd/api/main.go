package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sv-chat/internal/config"
	"sv-chat/internal/db"
	apihttp "sv-chat/internal/http"
	"sv-chat/internal/repository"
	"sv-chat/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	if cfg.IsDevelopment() {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	messageRepo, cleanup, err := newMessageRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("message store init", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer cleanup()

	chatSvc := service.NewChatService(logger, messageRepo)
	pageLoader := service.NewPageLoader(messageRepo)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	pageHandler := apihttp.NewPageHandler(logger, pageLoader)
	router := apihttp.NewRouter(logger, chatHandler, pageHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", server.Addr), zap.Error(err))
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("store", cfg.StoreDriver))

	if err := serve(ctx, server, ln, logger, 10*time.Second); err != nil {
		logger.Error("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newMessageRepository construye el store según STORE_DRIVER y devuelve su función de cierre.
func newMessageRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.MessageRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		repo := repository.NewRedisMessageRepository(client, cfg.RedisPrefix)
		if err := repo.Seed(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.Info("using redis message store", zap.String("addr", cfg.RedisAddr))
		return repo, func() { _ = client.Close() }, nil

	case config.StoreDriverPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		repo := repository.NewPgMessageRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := repo.Seed(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres message store")
		return repo, pool.Close, nil

	default:
		logger.Info("using in-memory message store")
		return repository.NewMemoryMessageRepository(), func() {}, nil
	}
}
