package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "home-finder-service/internal/adapters/logger"
	memory_adapter "home-finder-service/internal/adapters/memory"
	postgres_adapter "home-finder-service/internal/adapters/postgres"
	rabbitmq_adapter "home-finder-service/internal/adapters/rabbitmq"
	redis_adapter "home-finder-service/internal/adapters/redis"
	"home-finder-service/internal/adapters/rest"
	"home-finder-service/internal/configs"
	"home-finder-service/internal/core/port"
	"home-finder-service/internal/core/usecase"
	"home-finder-service/pkg/fluentlogger"
	"home-finder-service/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	redis     *goredis.Client
	apiServer *rest.Server
	listener  port.EventListenerPort

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// Loggers first, everything else logs through them.
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// Persistence adapters per the selected store driver.
	var (
		dbPool          *pgxpool.Pool
		propertyStorage port.PropertyStoragePort
		userRepository  port.UserRepositoryPort
		favoritesRepo   port.FavoritesRepositoryPort
	)

	switch appConfig.StoreDriver {
	case configs.StoreDriverPostgres:
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		if err := postgres_adapter.Migrate(context.Background(), dbPool); err != nil {
			appLogger.Error("Failed to run database migrations", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}

		propertyStorage, err = postgres_adapter.NewPropertyStorageAdapter(dbPool)
		if err == nil {
			userRepository, err = postgres_adapter.NewUserRepositoryAdapter(dbPool)
		}
		if err == nil {
			favoritesRepo, err = postgres_adapter.NewFavoritesRepositoryAdapter(dbPool)
		}
		if err != nil {
			appLogger.Error("Failed to create postgres adapters", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres adapters: %w", err)
		}
	case configs.StoreDriverMemory:
		appLogger.Warn("Using the in-memory store driver with a seeded demo catalog.", nil)
		propertyStorage = memory_adapter.NewSeededPropertyStorageAdapter()
		userRepository = memory_adapter.NewUserRepositoryAdapter()
		favoritesRepo = memory_adapter.NewFavoritesRepositoryAdapter()
	default:
		return nil, fmt.Errorf("unknown store driver %q", appConfig.StoreDriver)
	}

	// Optional read cache for degraded property searches.
	var (
		redisClient   *goredis.Client
		propertyCache port.PropertyCachePort
	)
	if appConfig.Redis.Enabled {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		propertyCache, err = redis_adapter.NewPropertyCacheAdapter(redisClient, time.Duration(appConfig.Redis.TTLSeconds)*time.Second)
		if err != nil {
			appLogger.Error("Failed to create redis cache adapter", err, nil)
			return nil, fmt.Errorf("failed to create redis cache adapter: %w", err)
		}
		appLogger.Info("Redis read cache enabled.", port.Fields{"addr": appConfig.Redis.Addr})
	}
	appLogger.Info("All persistence adapters initialized.", nil)

	// Use cases.
	findPropertiesUC := usecase.NewFindPropertiesUseCase(propertyStorage, propertyCache)
	propertyDetailsUC := usecase.NewGetPropertyDetailsUseCase(propertyStorage)
	featuredUC := usecase.NewGetFeaturedPropertiesUseCase(propertyStorage)
	ingestListingUC := usecase.NewIngestListingUseCase(propertyStorage)

	listUsersUC := usecase.NewListUsersUseCase(userRepository)
	createUserUC := usecase.NewCreateUserUseCase(userRepository)
	getUserUC := usecase.NewGetUserUseCase(userRepository)
	updateUserUC := usecase.NewUpdateUserUseCase(userRepository)
	deleteUserUC := usecase.NewDeleteUserUseCase(userRepository, favoritesRepo)
	syncIdentityUC := usecase.NewSyncIdentityUseCase(userRepository, favoritesRepo)

	addToFavoritesUC := usecase.NewAddToFavoritesUseCase(userRepository, favoritesRepo)
	removeFromFavoritesUC := usecase.NewRemoveFromFavoritesUseCase(userRepository, favoritesRepo)
	isFavoritedUC := usecase.NewIsFavoritedUseCase(userRepository, favoritesRepo)
	favoriteIDsUC := usecase.NewGetUserFavoriteIDsUseCase(userRepository, favoritesRepo)
	favoritesUC := usecase.NewGetUserFavoritesUseCase(userRepository, favoritesRepo, propertyStorage)

	// REST API server.
	webhookVerifier, err := rest.NewWebhookVerifier(appConfig.Auth.WebhookSecret)
	if err != nil {
		appLogger.Error("Failed to create webhook verifier", err, nil)
		return nil, fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	propertyHandlers := rest.NewPropertyHandler(findPropertiesUC, propertyDetailsUC, featuredUC)
	userHandlers := rest.NewUserHandler(listUsersUC, createUserUC, getUserUC, updateUserUC, deleteUserUC)
	favoritesHandlers := rest.NewFavoritesHandler(addToFavoritesUC, removeFromFavoritesUC, isFavoritedUC, favoriteIDsUC, favoritesUC)
	webhookHandlers := rest.NewWebhookHandler(webhookVerifier, syncIdentityUC)

	apiServer := rest.NewServer(
		appConfig.Rest.Port,
		appConfig.Auth.JWTSecret,
		propertyHandlers,
		userHandlers,
		favoritesHandlers,
		webhookHandlers,
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	// Optional listing ingest consumer.
	var listener port.EventListenerPort
	if appConfig.RabbitMQ.Enabled {
		listener, err = rabbitmq_adapter.NewListingEventsConsumerAdapter(appConfig.RabbitMQ.URL, ingestListingUC, baseLogger)
		if err != nil {
			appLogger.Error("Failed to create listing events consumer", err, nil)
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, fmt.Errorf("failed to create listing events consumer: %w", err)
		}
		appLogger.Info("Listing ingest consumer configured.", nil)
	}

	return &App{
		config:    appConfig,
		dbPool:    dbPool,
		redis:     redisClient,
		apiServer: apiServer,
		listener:  listener,

		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run starts every component and manages the application lifecycle.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancel()
		}

		if a.listener != nil {
			if err := a.listener.Close(); err != nil {
				a.logger.Error("Error during consumer shutdown", err, nil)
			}
		}

		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				a.logger.Error("Error closing redis client", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	componentErrors := make(chan error, 2)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			componentErrors <- err
		}
	}()

	if a.listener != nil {
		go func() {
			if err := a.listener.Start(appCtx); err != nil && appCtx.Err() == nil {
				componentErrors <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-componentErrors:
		a.logger.Error("Component failed, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
