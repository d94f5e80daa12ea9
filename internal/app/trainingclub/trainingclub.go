package trainingclub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/eventosguau/training-club/internal/cache"
	"github.com/eventosguau/training-club/internal/config"
	"github.com/eventosguau/training-club/internal/lib/jwt"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/migrations"
	"github.com/eventosguau/training-club/internal/rabbitmq"
	authservice "github.com/eventosguau/training-club/internal/services/auth"
	libraryservice "github.com/eventosguau/training-club/internal/services/library"
	paymentservice "github.com/eventosguau/training-club/internal/services/payment"
	planservice "github.com/eventosguau/training-club/internal/services/plan"
	userservice "github.com/eventosguau/training-club/internal/services/user"
	"github.com/eventosguau/training-club/internal/storage/fallback"
	"github.com/eventosguau/training-club/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
}

// New собирает приложение: хранилище, миграции, кеш, брокер и маршруты.
//
// Очередь уведомлений не обязательна для старта: без брокера назначение
// упражнений работает, уведомления просто не отправляются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	fallbackStore, err := fallback.New(cfg.FallbackDir)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	var amqpConn *amqp.Connection
	var publisher planservice.Publisher
	amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, plan notifications disabled", sl.Err(err))
	} else {
		ch, chErr := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
		if chErr != nil {
			logger.Warn("failed to setup rabbitmq channel, plan notifications disabled", sl.Err(chErr))
		} else {
			publisher = rabbitmq.NewPlanReadyPublisher(ch)
		}
	}

	auth := authservice.NewAuthService(db, jwtMaker)
	users := userservice.NewUserService(db, fallbackStore, cacheRedis, logger)
	plans := planservice.NewPlanService(db, cacheRedis, publisher, logger)
	library := libraryservice.NewLibraryService(db, logger)
	signer := paymentservice.NewSigner(cfg.Redsys)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, auth, users, plans, library, signer)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает сервер и блокируется до остановки контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
