package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/filestore"
	"reviewhub/internal/httpapi/cache"
	"reviewhub/internal/httpapi/handler"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database and migrate the schema
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis is optional: a nil client disables the leaderboard cache but
	// everything else keeps working.
	redisClient := connectRedis(cfg, logger)
	lbCache := cache.NewLeaderboardCache(redisClient, time.Duration(cfg.CacheTTL)*time.Second)

	// Paper binaries live on disk under the upload dir
	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to init file store: %v", err)
	}

	// Repositories and the transaction manager
	repos := repository.NewRepos(db)
	txManager := repository.NewTxManager(db, repos)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	scoring := service.NewScoringEngine(logger)
	authService := service.NewAuthService(txManager, repos, refreshTokenRepo, cfg, logger)
	userService := service.NewUserService(txManager, repos)
	paperService := service.NewPaperService(txManager, repos, files)
	workflowService := service.NewWorkflowService(txManager, repos, scoring, lbCache, logger)
	tokenService := service.NewTokenService(txManager, repos, lbCache, logger)
	leaderboardService := service.NewLeaderboardService(repos, lbCache, logger)
	proofService := service.NewProofService(txManager, repos)
	auditService := service.NewAuditService(repos)

	// Seed the achievement catalog; repeated startups are no-ops
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tokenService.SeedDefaults(seedCtx); err != nil {
		log.Fatalf("Failed to seed token catalog: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService)
	paperHandler := handler.NewPaperHandler(paperService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)
	tokenHandler := handler.NewTokenHandler(tokenService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	proofHandler := handler.NewProofHandler(proofService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Auth routes are rate limited per IP
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	authGroup := api.Group("/auth", authLimiter.Middleware())
	authHandler.RegisterRoutes(authGroup)

	// Leaderboard is public
	leaderboardHandler.RegisterRoutes(api.Group("/leaderboard"))

	// Everything else requires a valid access token
	authed := api.Group("", middleware.AuthMiddleware(authService))

	users := authed.Group("/users")
	userHandler.RegisterRoutes(users)
	tokenHandler.RegisterUserRoutes(users)

	papers := authed.Group("/papers")
	paperHandler.RegisterRoutes(papers)
	workflowHandler.RegisterPaperRoutes(papers)

	workflowHandler.RegisterAssignmentRoutes(authed.Group("/assignments"))

	reviews := authed.Group("/reviews")
	workflowHandler.RegisterReviewRoutes(reviews)
	proofHandler.RegisterRoutes(reviews)

	tokenHandler.RegisterRoutes(authed.Group("/tokens"))
	auditHandler.RegisterRoutes(authed.Group("/audit"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting_api_server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// connectRedis returns nil when Redis is unreachable so the cache layer
// degrades to pass-through.
func connectRedis(cfg *config.Config, logger *slog.Logger) *redis.Client {
	addr := cfg.RedisURL
	addr = strings.TrimPrefix(addr, "redis://")
	addr = strings.TrimPrefix(addr, "rediss://")

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis_unavailable", "addr", addr, "error", err)
		return nil
	}

	logger.Info("redis_connected", "addr", addr)
	return rdb
}
