package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/stridelog/backend/api/handler"
	"github.com/stridelog/backend/internal/config"
	"github.com/stridelog/backend/internal/infrastructure/bolt"
	"github.com/stridelog/backend/internal/infrastructure/monitor"
	"github.com/stridelog/backend/internal/middleware"
	"github.com/stridelog/backend/internal/router"
	"github.com/stridelog/backend/internal/services"
	"github.com/stridelog/backend/internal/services/lifecycle"
	"github.com/stridelog/backend/pkg/httpcontext"
	"github.com/stridelog/backend/pkg/logger"
	boltRepo "github.com/stridelog/backend/repository/bolt"
	backupUC "github.com/stridelog/backend/usecase/backup"
	challengeUC "github.com/stridelog/backend/usecase/challenge"
	commitmentUC "github.com/stridelog/backend/usecase/commitment"
	profileUC "github.com/stridelog/backend/usecase/profile"
	progressUC "github.com/stridelog/backend/usecase/progress"
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

	store, err := bolt.Open(cfg.Store.Path)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err))
	}
	manager.Register("store", func(ctx context.Context) error {
		return store.Close()
	})

	mon := monitor.New(store, 30*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	challengeRepo := boltRepo.NewChallengeRepository(store)
	progressRepo := boltRepo.NewProgressRepository(store)
	reflectionRepo := boltRepo.NewReflectionRepository(store)
	settingsRepo := boltRepo.NewSettingsRepository(store)
	profileRepo := boltRepo.NewProfileRepository(store)

	challengeUseCase := challengeUC.New(challengeRepo, progressRepo, reflectionRepo, zapLogger)
	progressUseCase := progressUC.New(challengeRepo, progressRepo, reflectionRepo, zapLogger,
		progressUC.WithStreakThreshold(cfg.Streak.Threshold))
	profileUseCase := profileUC.New(settingsRepo, profileRepo, zapLogger)
	backupUseCase := backupUC.New(challengeRepo, progressRepo, reflectionRepo, settingsRepo, profileRepo, zapLogger)
	commitmentUseCase := commitmentUC.New(challengeRepo, profileRepo)

	reconciler := services.NewReconciler(challengeUseCase, mon, zapLogger, services.ReconcilerConfig{
		Interval: cfg.Reconcile.Interval,
		OnBoot:   cfg.Reconcile.OnBoot,
	})
	reconciler.Start()
	manager.Register("reconciler", func(ctx context.Context) error {
		reconciler.Stop(ctx)
		return nil
	})

	var reminder *services.Reminder
	if cfg.Reminder.Enabled {
		reminder = services.NewReminder(profileUseCase, challengeUseCase, nil, zapLogger)
		if err := reminder.Start(appCtx); err != nil {
			zapLogger.Error("reminder scheduler failed to start", zap.Error(err))
		} else {
			manager.Register("reminder", func(ctx context.Context) error {
				reminder.Stop(ctx)
				return nil
			})
		}
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	var settingsListener apiHandler.SettingsListener
	if reminder != nil {
		settingsListener = reminder
	}

	handlers := router.Handlers{
		Challenge: apiHandler.NewChallengeHandler(challengeUseCase, commitmentUseCase, ctxAdapter, zapLogger),
		Progress:  apiHandler.NewProgressHandler(progressUseCase, ctxAdapter, zapLogger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, settingsListener, ctxAdapter, zapLogger),
		Backup:    apiHandler.NewBackupHandler(backupUseCase, challengeUseCase, ctxAdapter, zapLogger),
		System:    apiHandler.NewSystemHandler(reconciler, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	logging := middleware.RequestLogging(zapLogger)
	r := router.New(handlers, logging)

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
