package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/studybuddy/backend/api/handler"
	"github.com/studybuddy/backend/internal/config"
	"github.com/studybuddy/backend/internal/infrastructure/buffer"
	"github.com/studybuddy/backend/internal/infrastructure/mistral"
	"github.com/studybuddy/backend/internal/infrastructure/monitor"
	pgInfra "github.com/studybuddy/backend/internal/infrastructure/postgres"
	redisInfra "github.com/studybuddy/backend/internal/infrastructure/redis"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/router"
	"github.com/studybuddy/backend/internal/services"
	"github.com/studybuddy/backend/internal/services/lifecycle"
	"github.com/studybuddy/backend/pkg/httpcontext"
	"github.com/studybuddy/backend/pkg/logger"
	"github.com/studybuddy/backend/repository/postgres"
	redisRepo "github.com/studybuddy/backend/repository/redis"
	authUC "github.com/studybuddy/backend/usecase/auth"
	exportUC "github.com/studybuddy/backend/usecase/export"
	profileUC "github.com/studybuddy/backend/usecase/profile"
	quizUC "github.com/studybuddy/backend/usecase/quiz"
	studyplanUC "github.com/studybuddy/backend/usecase/studyplan"
	trackerUC "github.com/studybuddy/backend/usecase/tracker"
	tutorUC "github.com/studybuddy/backend/usecase/tutor"
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

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	profileRepo := postgres.NewProfileRepository(pool)
	sessionRepo := postgres.NewStudySessionRepository(pool)
	chatRepo := postgres.NewChatHistoryRepository(pool)
	progressRepo := postgres.NewUserProgressRepository(pool)
	achievementRepo := postgres.NewAchievementRepository(pool)
	examRepo := postgres.NewExamRepository(pool)
	authSessionRepo := redisRepo.NewAuthSessionRepository(redisClient, 24*time.Hour)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		profileRepo,
		sessionRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
			Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)
	aiClient := mistral.NewClient(cfg.AI, zapLogger)

	authUseCase := authUC.New(profileRepo, authSessionRepo, nil, zapLogger)
	profileUseCase := profileUC.New(profileRepo, bufferBridge, zapLogger)
	studyplanUseCase := studyplanUC.New(sessionRepo, examRepo, bufferBridge, nil, zapLogger)
	trackerUseCase := trackerUC.New(studyplanUseCase, nil, nil, zapLogger)
	tutorUseCase := tutorUC.New(aiClient, chatRepo, progressRepo, nil, zapLogger)
	quizUseCase := quizUC.New(aiClient, sessionRepo, progressRepo, achievementRepo, nil, zapLogger)
	exportUseCase := exportUC.New(sessionRepo, progressRepo, achievementRepo, nil, zapLogger)

	// flush live timers before the datastores go away
	manager.Register("tracker", trackerUseCase.StopAll)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Study:   apiHandler.NewStudyHandler(studyplanUseCase, ctxAdapter, zapLogger),
		Planner: apiHandler.NewPlannerHandler(studyplanUseCase, ctxAdapter, zapLogger),
		Tracker: apiHandler.NewTrackerHandler(trackerUseCase, ctxAdapter, zapLogger),
		Tutor:   apiHandler.NewTutorHandler(tutorUseCase, ctxAdapter, zapLogger),
		Quiz:    apiHandler.NewQuizHandler(quizUseCase, ctxAdapter, zapLogger),
		Exam:    apiHandler.NewExamHandler(examRepo, ctxAdapter, zapLogger),
		Export:  apiHandler.NewExportHandler(exportUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
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
