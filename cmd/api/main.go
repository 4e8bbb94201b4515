package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corp-social-backend/config"
	v1 "corp-social-backend/internal/delivery/http/v1"
	"corp-social-backend/internal/repository/cache"
	"corp-social-backend/internal/repository/postgres"
	"corp-social-backend/internal/usecase"
	"corp-social-backend/pkg/antivirus"
	"corp-social-backend/pkg/auth"
	"corp-social-backend/pkg/clock"
	"corp-social-backend/pkg/database"
	"corp-social-backend/pkg/locale"
	"corp-social-backend/pkg/logger"
	"corp-social-backend/pkg/redis"
	"corp-social-backend/pkg/storage"
	"corp-social-backend/pkg/upload"
	"corp-social-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Corporate Social Network API
// @version         1.0
// @description     Employee profiles, posts, groups, address book and birthday reminders.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	accessLog := logger.NewAccessLogger("corp-social-backend", cfg.Environment)
	defer func() { _ = accessLog.Sync() }()
	logger.Log.Info("Starting corp-social backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.New(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured; birthday cache disabled, rate limiting in memory")
	case err != nil:
		logger.Log.Warn("Redis unavailable; continuing without it", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 5. Setup Storage (optional)
	var store upload.Store
	var s3Store *storage.S3Storage
	if cfg.S3Bucket != "" {
		s3Store, err = storage.NewS3Storage(ctx, storage.Config{
			Provider:        storage.Provider(cfg.S3Provider),
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			logger.Log.Error("Failed to configure object storage", "error", err)
			os.Exit(1)
		}
		store = s3Store
	}
	uploader := upload.NewUploader(store, cfg.UploadMaxImageDimension, cfg.UploadJPEGQuality)
	var scanner *antivirus.ClamAV
	if cfg.ClamAVAddress != "" {
		scanner = antivirus.NewClamAV(cfg.ClamAVAddress, 30*time.Second)
		uploader.WithScanner(scanner)
	}

	translator, err := locale.New(cfg.DefaultLocale)
	if err != nil {
		logger.Log.Error("Failed to load translations", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)
	commentRepo := postgres.NewCommentRepository(dbPool)
	groupRepo := postgres.NewGroupRepository(dbPool)
	birthdayCache := cache.NewBirthdayCache(redisClient, time.Duration(cfg.BirthdayCacheTTLMinutes)*time.Minute)

	// 7. Setup UseCases
	clk := clock.Real()
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo, clk)
	userUC := usecase.NewUserUsecase(userRepo, uploader, birthdayCache, validate)
	birthdayUC := usecase.NewBirthdayUsecase(userRepo, birthdayCache, clk, cfg.BirthdayLookaheadDays, cfg.BirthdayLimit)
	postUC := usecase.NewPostUsecase(postRepo, uploader)
	commentUC := usecase.NewCommentUsecase(commentRepo, postRepo)
	groupUC := usecase.NewGroupUsecase(groupRepo, postRepo)

	optional := map[string]usecase.Probe{"redis": nil, "storage": nil, "antivirus": nil}
	if redisClient != nil {
		optional["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	if s3Store != nil {
		optional["storage"] = s3Store.Ping
	}
	if scanner != nil {
		optional["antivirus"] = scanner.Ping
	}
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Probe{"database": dbPool.Ping}, optional)

	// 8. Setup Token Verification
	var jwksProvider *auth.Provider
	if cfg.JWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSURL)
	}
	verifier := auth.NewVerifier(cfg.JWTSecret, jwksProvider)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		BirthdayUC: birthdayUC,
		PostUC:     postUC,
		CommentUC:  commentUC,
		GroupUC:    groupUC,
		HealthUC:   healthUC,
		Verifier:   verifier,
		Translator: translator,
		Redis:      redisClient,
		AccessLog:  accessLog,
		Config:     cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
