package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-assign-system.com/task-assign-system/internal/cache"
	config "task-assign-system.com/task-assign-system/internal/configs"
	httpapi "task-assign-system.com/task-assign-system/internal/http"
	repository "task-assign-system.com/task-assign-system/internal/repositories"
	"task-assign-system.com/task-assign-system/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task assignment HTTP API backed by sqlite and an optional redis user cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger := config.NewLogger(cfg.LogLevel)

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		taskRepo := repository.NewTaskRepository(database)
		userRepo := repository.NewUserRepository(database)

		var users services.UserDirectory = userRepo
		if cfg.UserCacheEnabled() {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			ttl := time.Duration(cfg.UserCacheTTLSeconds) * time.Second
			users = cache.NewCachedDirectory(userRepo, cache.NewRedisUserCache(redisClient, ttl), logger)
			logger.Info("user summary cache enabled", "redis", cfg.RedisAddr, "ttl", ttl)
		}

		taskService := services.NewTaskService(taskRepo, users, logger)

		e := httpapi.NewServer(logger)
		httpapi.Register(e, httpapi.NewHandler(taskService), []byte(cfg.JWTSecret), cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", "err", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP server shutdown incomplete", "err", err)
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
