package main

import (
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/luckyroll/walletgate/adapters/events"
	"github.com/luckyroll/walletgate/adapters/provider"
	"github.com/luckyroll/walletgate/adapters/scheme"
	"github.com/luckyroll/walletgate/adapters/store"
	"github.com/luckyroll/walletgate/adapters/tokenizer"
	"github.com/luckyroll/walletgate/config"
	"github.com/luckyroll/walletgate/ports"
	"github.com/luckyroll/walletgate/service"
	"github.com/luckyroll/walletgate/transport/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Config validation fails fast: a weak secret must prevent the service
	// from serving authenticated routes at all.
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jwtTokenizer, err := tokenizer.NewJWTTokenizer([]byte(cfg.SessionSecret))
	if err != nil {
		logger.Error("failed to create tokenizer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sigScheme, err := scheme.ByName(cfg.Scheme)
	if err != nil {
		logger.Error("failed to select signature scheme", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := []service.Option{
		service.WithChallengeTTL(cfg.ChallengeTTL),
		service.WithSessionTTL(cfg.SessionTTL),
	}

	var challengeStore ports.ChallengeStore
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		challengeStore = store.NewRedisStore(redisClient)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewSlogLogger(logger),
		)
		if err != nil {
			logger.Error("failed to create event publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		opts = append(opts, service.WithEventPublisher(events.NewWatermillPublisher(publisher)))
	} else {
		// Single-instance only: issued challenges are not visible to other
		// instances.
		logger.Warn("REDIS_URL not set, using in-process challenge store")
		memStore := store.NewMemoryStore()
		defer memStore.Close()
		challengeStore = memStore
	}

	authService := service.NewAuthService(challengeStore, jwtTokenizer, sigScheme, logger, opts...)

	// Session validation is either self-issued or delegated to an identity
	// provider, chosen here once per deployment.
	var validator ports.SessionValidator = jwtTokenizer
	if cfg.ProviderURL != "" {
		validator = provider.NewHTTPValidator(cfg.ProviderURL)
		logger.Info("delegating session validation", slog.String("provider_url", cfg.ProviderURL))
	}

	router := http.SetupRouter(authService, validator, cfg.CookieSecure)

	logger.Info("starting walletgate",
		slog.String("addr", cfg.ListenAddr),
		slog.String("scheme", sigScheme.Name()))

	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
