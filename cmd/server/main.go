package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/focusflow/backend/api/handler"
	"github.com/focusflow/backend/internal/config"
	kvInfra "github.com/focusflow/backend/internal/infrastructure/kv"
	"github.com/focusflow/backend/internal/infrastructure/monitor"
	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/router"
	"github.com/focusflow/backend/internal/services/lifecycle"
	"github.com/focusflow/backend/internal/services/reminder"
	"github.com/focusflow/backend/pkg/httpcontext"
	"github.com/focusflow/backend/pkg/logger"
	"github.com/focusflow/backend/pkg/passhash"
	kvRepo "github.com/focusflow/backend/repository/kv"
	authUC "github.com/focusflow/backend/usecase/auth"
	focusUC "github.com/focusflow/backend/usecase/focus"
	profileUC "github.com/focusflow/backend/usecase/profile"
	taskUC "github.com/focusflow/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := openStore(cfg)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err))
	}
	manager.RegisterCloser("store", store)

	hasher, err := passhash.New(cfg.Auth.HashScheme)
	if err != nil {
		zapLogger.Fatal("invalid password hash scheme", zap.Error(err))
	}

	accountRepo := kvRepo.NewAccountRepository(store, cfg.Store.Prefix, zapLogger)
	taskRepo := kvRepo.NewTaskRepository(store, cfg.Store.Prefix, zapLogger)
	statsRepo := kvRepo.NewStatsRepository(store, cfg.Store.Prefix, zapLogger)

	authUseCase := authUC.New(accountRepo, hasher, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	profileUseCase := profileUC.New(accountRepo, taskRepo, statsRepo, zapLogger)

	focusManager := focusUC.NewManager(taskRepo, statsRepo, cfg.Focus.Duration, cfg.Focus.SweepInterval, zapLogger)
	focusManager.Start()
	manager.Register("focus_manager", func(ctx context.Context) error {
		focusManager.Stop(ctx)
		return nil
	})

	reminderWorker := reminder.NewWorker(accountRepo, taskRepo, cfg.Reminder.PollInterval, cfg.Reminder.Window, zapLogger)
	reminderWorker.Start()
	manager.Register("reminder_worker", func(ctx context.Context) error {
		reminderWorker.Stop(ctx)
		return nil
	})

	mon := monitor.New(store, focusManager, reminderWorker, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Focus:    apiHandler.NewFocusHandler(focusManager, ctxAdapter, zapLogger),
		Reminder: apiHandler.NewReminderHandler(reminderWorker, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(cfg.Auth.JWTSecret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

func openStore(cfg *config.Config) (kvInfra.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		return kvInfra.OpenRedis(kvInfra.RedisOptions{
			URL:      cfg.Store.RedisURL,
			Password: cfg.Store.RedisPass,
			DB:       cfg.Store.RedisDB,
		})
	default:
		return kvInfra.OpenBolt(cfg.Store.BoltPath, "")
	}
}
