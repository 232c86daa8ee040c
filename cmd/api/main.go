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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talentmap/talentmap-api/config"
	"github.com/talentmap/talentmap-api/internal/cache"
	"github.com/talentmap/talentmap-api/internal/database/postgres"
	"github.com/talentmap/talentmap-api/internal/handlers"
	"github.com/talentmap/talentmap-api/internal/middleware"
	"github.com/talentmap/talentmap-api/internal/repository"
	"github.com/talentmap/talentmap-api/internal/services"
	"github.com/talentmap/talentmap-api/pkg/db"
	"github.com/talentmap/talentmap-api/pkg/jwt"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"github.com/talentmap/talentmap-api/pkg/profiling"
	"github.com/talentmap/talentmap-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// dataSource is the store behind both repositories
type dataSource interface {
	repository.ProfileDataSource
	repository.CollaborationDataSource
}

// openDataSource returns the configured store, its health checks and a close function
func openDataSource(ctx context.Context, cfg *config.Config) (dataSource, map[string]handlers.HealthCheck, func(), error) {
	checks := map[string]handlers.HealthCheck{}

	if cfg.Database.WorkOffline {
		store := repository.NewMemoryStore()
		if cfg.Database.SeedFile != "" {
			f, err := os.Open(cfg.Database.SeedFile)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			if _, err := store.LoadProfilesJSON(f); err != nil {
				return nil, nil, nil, err
			}
		}
		logger.Warn("Working offline: using the in-memory store")
		return store, checks, func() {}, nil
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	client := postgres.NewClient(pool)
	checks["database"] = client.Ping
	return repository.NewPostgresDataSource(client), checks, client.Close, nil
}

// registerRoutes registers the public and member API routes
func registerRoutes(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	publicRateLimiter, memberRateLimiter *middleware.RateLimiter,
	tokenManager *jwt.TokenManager,
	talentHandler *handlers.TalentHandler,
	skillsHandler *handlers.SkillsHandler,
	collaborationHandler *handlers.CollaborationHandler,
	memberHandler *handlers.MemberHandler,
	cacheHandler *handlers.CacheHandler,
) {
	sessionMiddleware := middleware.MemberSessionMiddleware(tokenManager, cfg.Auth.CookieDomain, cfg.Auth.CookieSecure)

	v1.GET("/talents", publicRateLimiter.Middleware(), talentHandler.Search)
	v1.GET("/talents/:id", publicRateLimiter.Middleware(), talentHandler.GetByID)
	v1.GET("/skills", publicRateLimiter.Middleware(), skillsHandler.GetStats)
	v1.GET("/skills/map", publicRateLimiter.Middleware(), skillsHandler.GetSkillMap)

	collaborations := v1.Group("/collaborations")
	collaborations.Use(memberRateLimiter.Middleware(), sessionMiddleware)
	collaborations.GET("", collaborationHandler.List)
	collaborations.POST("", middleware.BodySizeLimitMiddleware(64*1024), collaborationHandler.Create)
	collaborations.GET("/:id", collaborationHandler.GetByID)
	collaborations.POST("/:id/accept", collaborationHandler.Accept)
	collaborations.POST("/:id/decline", collaborationHandler.Decline)
	collaborations.POST("/:id/complete", collaborationHandler.Complete)

	me := v1.Group("/me")
	me.Use(memberRateLimiter.Middleware(), sessionMiddleware)
	me.GET("/stats", memberHandler.GetStats)

	if cfg.Auth.InternalAPIToken == "" {
		logger.Warn("Internal cache routes disabled: INTERNAL_API_TOKEN not configured")
		return
	}
	v1.POST("/internal/cache/invalidate",
		memberRateLimiter.Middleware(),
		middleware.InternalAPIAuthMiddleware(cfg.Auth.InternalAPIToken),
		cacheHandler.Invalidate)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting TalentMap API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.Bool("offline", cfg.Database.WorkOffline),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	store, healthChecks, closeStore, err := openDataSource(startupCtx, cfg)
	if err != nil {
		logger.Fatal("Failed to open data source", zap.Error(err))
	}
	defer closeStore()

	// Profile reads go through the in-process cache unless it is disabled
	var profileCache *cache.ProfileCache
	cacheReady := func() bool { return true }
	if cfg.Cache.DisableProfileCache {
		logger.Warn("Profile cache is DISABLED - reading from the store on every request")
	} else {
		profileCache = cache.NewProfileCache(store, cfg.Cache.ProfileTTLSeconds)
		if err := profileCache.Initialize(startupCtx); err != nil {
			logger.Fatal("Failed to initialize profile cache", zap.Error(err))
		}
		defer profileCache.Stop()
		cacheReady = profileCache.IsReady
	}

	// The shared skill stats snapshot is optional; without Redis every
	// instance aggregates locally
	var statsStore services.SkillStatsStore
	var statsInvalidator handlers.SkillStatsInvalidator
	if cfg.Redis.URL != "" {
		redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		skillStatsCache := cache.NewSkillStatsCache(redisClient, cfg.Redis.SkillStatsTTLSeconds)
		statsStore = skillStatsCache
		statsInvalidator = skillStatsCache
		healthChecks["redis"] = skillStatsCache.Ping
	}

	profileRepo := repository.NewProfileRepository(store, profileCache)
	collaborationRepo := repository.NewCollaborationRepository(store)

	directoryService := services.NewDirectoryService(profileRepo, cfg)
	skillsService := services.NewSkillsService(profileRepo, statsStore, cfg)
	collaborationService := services.NewCollaborationService(collaborationRepo)
	memberService := services.NewMemberService(profileRepo, collaborationRepo)

	tokenManager := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTLHours)

	talentHandler := handlers.NewTalentHandler(directoryService)
	skillsHandler := handlers.NewSkillsHandler(skillsService)
	collaborationHandler := handlers.NewCollaborationHandler(collaborationService)
	memberHandler := handlers.NewMemberHandler(memberService)
	cacheHandler := handlers.NewCacheHandler(profileRepo, statsInvalidator)
	healthHandler := handlers.NewHealthHandler(cacheReady, healthChecks)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://127.0.0.1:5173")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.InternalAPITokenHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // member session cookie
		MaxAge:           12 * time.Hour,
	}))

	publicRateLimiter := middleware.NewRateLimiter(50, 100)
	memberRateLimiter := middleware.NewRateLimiter(5, 10)
	defer publicRateLimiter.Stop()
	defer memberRateLimiter.Stop()

	api := router.Group("/api")
	api.GET("/healthcheck", publicRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	registerRoutes(v1, cfg, publicRateLimiter, memberRateLimiter, tokenManager,
		talentHandler, skillsHandler, collaborationHandler, memberHandler, cacheHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
