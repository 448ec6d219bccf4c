package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chainscore/walletauth/adapters/events"
	"github.com/chainscore/walletauth/adapters/store"
	"github.com/chainscore/walletauth/adapters/tokenizer"
	"github.com/chainscore/walletauth/config"
	"github.com/chainscore/walletauth/ports"
	"github.com/chainscore/walletauth/service"
	transport "github.com/chainscore/walletauth/transport/http"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtTokenizer, err := tokenizer.NewJWTTokenizer(cfg.Token.Algorithm, []byte(cfg.Token.Secret), cfg.TokenTTL())
	if err != nil {
		logger.Fatal("failed to create tokenizer", zap.Error(err))
	}

	var (
		nonceStore ports.NonceStore
		eventPub   ports.EventPublisher
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to parse redis URL", zap.Error(err))
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}

		redisStore := store.NewRedisStore(redisClient)
		defer redisStore.Close()
		nonceStore = redisStore

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Fatal("failed to create event publisher", zap.Error(err))
		}
		eventPub = events.NewWatermillPublisher(publisher)

		logger.Info("using redis nonce store")
	} else {
		memStore := store.NewMemoryStore()
		memStore.StartJanitor(cfg.SweepInterval())
		defer memStore.Close()
		nonceStore = memStore

		logger.Info("using in-memory nonce store")
	}

	authService := service.NewAuthService(nonceStore, jwtTokenizer, eventPub, logger, cfg.NonceTTL())
	router := transport.SetupRouter(authService, logger)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
