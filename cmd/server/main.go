package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"z2b/config"
	"z2b/internal/database"
	"z2b/internal/router"
	"z2b/internal/service"
	"z2b/internal/ws"
	"z2b/pkg/events"
	"z2b/pkg/logger"
	"z2b/pkg/mail"
	"z2b/pkg/storage"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title           Z2B Table Banquet API
// @version         1.0
// @description     Membership portal: referrals, gated content and the workshop feed.
// @host            localhost:8099
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var (
	cfg *config.Config
	log *zap.Logger

	skipMigrate bool
)

var rootCmd = &cobra.Command{
	Use:   "z2b",
	Short: "Z2B Table Banquet membership API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		var err error
		log, err = logger.New(cfg.LogLevel, cfg.Server.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema up to date")
		return nil
	},
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create or promote the admin profile from ADMIN_EMAIL / ADMIN_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)
		return database.SeedAdmin(db, &cfg.Admin, service.GenerateReferralCode, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run auto-migration on startup")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if !skipMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := database.SeedAdmin(db, &cfg.Admin, service.GenerateReferralCode, log); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	store, err := storage.New(storage.Config{
		Driver:              cfg.Storage.Driver,
		S3Region:            cfg.Storage.S3Region,
		S3Endpoint:          cfg.Storage.S3Endpoint,
		S3AccessKeyID:       cfg.Storage.S3AccessKeyID,
		S3SecretAccessKey:   cfg.Storage.S3SecretAccessKey,
		S3UseSSL:            cfg.Storage.S3UseSSL,
		CloudinaryCloudName: cfg.Storage.CloudinaryCloudName,
		CloudinaryAPIKey:    cfg.Storage.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.Storage.CloudinaryAPISecret,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	publisher := events.New(events.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("event publisher close", zap.Error(err))
		}
	}()

	mailer := mail.New(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, rate limits fail open until it recovers", zap.Error(err))
		}
		cancel()
	}

	engine := router.Setup(router.Deps{
		Config: cfg,
		DB:     db,
		Log:    log,
		Store:  store,
		Events: publisher,
		Mailer: mailer,
		Redis:  rdb,
		Hub:    ws.NewHub(),
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func openDB() (*gorm.DB, error) {
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
