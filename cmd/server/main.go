package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyfeed/content-service/internal/cache"
	"github.com/studyfeed/content-service/internal/config"
	"github.com/studyfeed/content-service/internal/handlers"
	"github.com/studyfeed/content-service/internal/migration"
	"github.com/studyfeed/content-service/internal/repositories/jsonfile"
	"github.com/studyfeed/content-service/internal/repositories/mongodb"
	"github.com/studyfeed/content-service/internal/services"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/studyfeed/content-service/internal/validator"
	"github.com/studyfeed/content-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsProduction() {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	postsFile := jsonfile.NewPostStore(filepath.Join(cfg.DataDir, "posts.json"))
	questionsFile := jsonfile.NewQuestionStore(filepath.Join(cfg.DataDir, "questions.json"))
	quizzesFile := jsonfile.NewQuizStore(filepath.Join(cfg.DataDir, "quizzes.json"))

	managerCfg := services.ManagerConfig{
		PostsFile:     postsFile,
		QuestionsFile: questionsFile,
		QuizzesFile:   quizzesFile,
		Validator:     validator.New(),
		Logger:        logger,
	}

	// The document store is optional outside production; without it the
	// services run on the JSON-file backing.
	if cfg.MongoURI != "" {
		client, db, err := pkg.NewMongoDatabase(cfg)
		if err != nil {
			if cfg.IsProduction() {
				return err
			}
			logger.Warn("document store unavailable, using file backing", "error", err)
		} else {
			defer func() {
				_ = client.Disconnect(context.Background())
			}()

			managerCfg.PostsDoc = mongodb.NewPostStore(db)
			managerCfg.QuestionsDoc = mongodb.NewQuestionStore(db)
			managerCfg.QuizzesDoc = mongodb.NewQuizStore(db)
			managerCfg.Probe = pkg.MongoProber(client)
			managerCfg.Migrator = migration.NewMigrator(
				managerCfg.QuestionsFile, managerCfg.QuestionsDoc,
				managerCfg.QuizzesFile, managerCfg.QuizzesDoc,
				managerCfg.PostsFile, managerCfg.PostsDoc,
				logger,
			)
		}
	}

	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, list caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			managerCfg.Cache = cache.NewRedisCache(redisClient, logger)
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		return err
	}
	defer publisher.Close()
	managerCfg.Publisher = publisher

	serviceManager := services.NewServiceManager(managerCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serviceManager.Initialize(ctx); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, cfg.AdminToken, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
