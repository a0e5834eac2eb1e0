package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	assessmentapp "github.com/hris/backend/internal/application/assessment"
	assetapp "github.com/hris/backend/internal/application/asset"
	bulkapp "github.com/hris/backend/internal/application/bulk"
	competencyapp "github.com/hris/backend/internal/application/competency"
	employeeapp "github.com/hris/backend/internal/application/employee"
	gradingapp "github.com/hris/backend/internal/application/grading"
	identityapp "github.com/hris/backend/internal/application/identity"
	jobdescapp "github.com/hris/backend/internal/application/jobdesc"
	trainingapp "github.com/hris/backend/internal/application/training"
	"github.com/hris/backend/internal/infrastructure/auth"
	"github.com/hris/backend/internal/infrastructure/config"
	"github.com/hris/backend/internal/infrastructure/logger"
	"github.com/hris/backend/internal/infrastructure/persistence"
	"github.com/hris/backend/internal/infrastructure/scheduler"
	"github.com/hris/backend/internal/infrastructure/storage"
	"github.com/hris/backend/internal/infrastructure/telemetry"
	"github.com/hris/backend/internal/interfaces/http/handler"
	"github.com/hris/backend/internal/interfaces/http/middleware"
	"github.com/hris/backend/internal/interfaces/http/router"
)

const version = "2.3.1"

// workforceProvider feeds the periodic workforce gauges from the
// application services.
type workforceProvider struct {
	assets    *assetapp.AssetService
	trainings *trainingapp.TrainingService
}

func (p *workforceProvider) GetLowStockBatchCount(ctx context.Context) (int64, error) {
	return p.assets.GetLowStockBatchCount(ctx)
}

func (p *workforceProvider) GetOverdueTrainingCount(ctx context.Context) (int64, error) {
	return p.trainings.GetOverdueTrainingCount(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting HRIS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		dbPlugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)
		if err := dbPlugin.Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Token blacklist. Redis keeps revocations shared across replicas;
	// the in-memory fallback only suits single-instance deployments.
	var blacklist auth.TokenBlacklist
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		log.Info("Redis token blacklist enabled",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Object storage for employee documents and training materials
	var objectStorage employeeapp.ObjectStorageService
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Warn("Failed to verify storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Stub object storage in use, uploads are not persisted")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	batchRepo := persistence.NewGormAssetBatchRepository(db.DB)
	assignmentRepo := persistence.NewGormAssetAssignmentRepository(db.DB)
	assetTxScope := persistence.NewGormAssetTransactionScope(db.DB)
	jdRepo := persistence.NewGormJobDescriptionRepository(db.DB)
	jobAssignmentRepo := persistence.NewGormJobAssignmentRepository(db.DB)
	skillGroupRepo := persistence.NewGormSkillGroupRepository(db.DB)
	behavioralGroupRepo := persistence.NewGormBehavioralGroupRepository(db.DB)
	matrixRepo := persistence.NewGormPositionSkillMatrixRepository(db.DB)
	assessmentRepo := persistence.NewGormSelfAssessmentRepository(db.DB)
	trainingRepo := persistence.NewGormTrainingRepository(db.DB)
	trainingAssignmentRepo := persistence.NewGormTrainingAssignmentRepository(db.DB)
	scenarioRepo := persistence.NewGormScenarioRepository(db.DB)
	importHistoryRepo := persistence.NewGormImportHistoryRepository(db.DB)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authConfig := identityapp.DefaultAuthServiceConfig()
	if cfg.Auth.MaxFailedAttempts > 0 {
		authConfig.MaxLoginAttempts = cfg.Auth.MaxFailedAttempts
	}
	if cfg.Auth.LockoutDuration > 0 {
		authConfig.LockDuration = cfg.Auth.LockoutDuration
	}
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, blacklist, authConfig, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, employeeRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, userRepo, log)
	departmentService := identityapp.NewDepartmentService(departmentRepo, employeeRepo, log)

	// Domain services
	employeeService := employeeapp.NewEmployeeService(employeeRepo, departmentRepo)
	documentService := employeeapp.NewDocumentService(employeeRepo, objectStorage)
	if cfg.Storage.PresignExpiry > 0 {
		docConfig := employeeapp.DefaultDocumentServiceConfig()
		docConfig.UploadURLExpiry = cfg.Storage.PresignExpiry
		docConfig.DownloadURLExpiry = cfg.Storage.PresignExpiry
		documentService.SetConfig(docConfig)
	}
	orgChartService := employeeapp.NewOrgChartService(employeeRepo)
	assetService := assetapp.NewAssetService(batchRepo, assignmentRepo, employeeRepo, assetTxScope)
	jobDescService := jobdescapp.NewJobDescriptionService(jdRepo, skillGroupRepo, departmentRepo)
	jobAssignmentService := jobdescapp.NewAssignmentService(jdRepo, jobAssignmentRepo, employeeRepo)
	taxonomyService := competencyapp.NewTaxonomyService(skillGroupRepo, behavioralGroupRepo)
	matrixService := competencyapp.NewMatrixService(matrixRepo, skillGroupRepo)
	assessmentService := assessmentapp.NewAssessmentService(assessmentRepo, employeeRepo, skillGroupRepo)
	trainingService := trainingapp.NewTrainingService(trainingRepo, trainingAssignmentRepo, employeeRepo)
	materialService := trainingapp.NewMaterialService(trainingRepo, objectStorage)
	if cfg.Storage.PresignExpiry > 0 {
		matConfig := trainingapp.DefaultMaterialServiceConfig()
		matConfig.UploadURLExpiry = cfg.Storage.PresignExpiry
		matConfig.DownloadURLExpiry = cfg.Storage.PresignExpiry
		materialService.SetConfig(matConfig)
	}
	scenarioService := gradingapp.NewScenarioService(scenarioRepo)
	importService := bulkapp.NewImportService(importHistoryRepo, employeeRepo, batchRepo, departmentRepo)
	importService.SetLimits(cfg.Import.MaxFileSize, cfg.Import.MaxRows)
	exportService := bulkapp.NewExportService(employeeRepo, departmentRepo, batchRepo)

	// Telemetry
	var tracerProvider *telemetry.TracerProvider
	var meterProvider *telemetry.MeterProvider
	var businessMetrics *telemetry.BusinessMetrics
	if cfg.Telemetry.Enabled {
		tracerProvider, err = telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		meterProvider, err = telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize meter provider", zap.Error(err))
		}
		defer func() {
			if err := meterProvider.Shutdown(context.Background()); err != nil {
				log.Error("Error shutting down meter provider", zap.Error(err))
			}
		}()

		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  meterProvider.Meter("hris-backend"),
			Logger: log,
			Provider: &workforceProvider{
				assets:    assetService,
				trainings: trainingService,
			},
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		defer businessMetrics.Stop()
		log.Info("Telemetry enabled",
			zap.String("endpoint", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio))
	}

	// Background jobs: training overdue sweep and asset low stock scan
	if cfg.Scheduler.Enabled {
		executor := scheduler.NewExecutor(trainingService, assetService, log)
		schedConfig := scheduler.DefaultConfig()
		if cfg.Scheduler.JobTimeout > 0 {
			schedConfig.JobTimeout = cfg.Scheduler.JobTimeout
		}
		if cfg.Scheduler.RetryAttempts > 0 {
			schedConfig.RetryAttempts = cfg.Scheduler.RetryAttempts
		}
		if cfg.Scheduler.RetryDelay > 0 {
			schedConfig.RetryDelay = cfg.Scheduler.RetryDelay
		}
		sched := scheduler.NewScheduler(schedConfig, executor, log)
		if err := sched.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		hour, minute, err := scheduler.ParseDailySchedule(cfg.Scheduler.OverdueSweepSchedule)
		if err != nil {
			log.Fatal("Invalid overdue sweep schedule",
				zap.String("schedule", cfg.Scheduler.OverdueSweepSchedule), zap.Error(err))
		}
		trigger := scheduler.NewDailyTrigger(scheduler.DailyTriggerConfig{
			Hour:       hour,
			Minute:     minute,
			MaxRetries: schedConfig.RetryAttempts,
		}, sched, []scheduler.JobKind{
			scheduler.JobKindOverdueSweep,
			scheduler.JobKindLowStockScan,
		}, log)
		if err := trigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start daily trigger", zap.Error(err))
		}
		defer func() {
			if err := trigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping daily trigger", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Int("sweep_hour", hour), zap.Int("sweep_minute", minute))
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, businessMetrics)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	employeeHandler := handler.NewEmployeeHandler(employeeService, documentService)
	orgChartHandler := handler.NewOrgChartHandler(orgChartService)
	assetHandler := handler.NewAssetHandler(assetService, businessMetrics)
	jobDescHandler := handler.NewJobDescriptionHandler(jobDescService, jobAssignmentService)
	competencyHandler := handler.NewCompetencyHandler(taxonomyService, matrixService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	trainingHandler := handler.NewTrainingHandler(trainingService, materialService, businessMetrics)
	gradingHandler := handler.NewGradingHandler(scenarioService, businessMetrics)
	bulkHandler := handler.NewBulkHandler(importService, exportService, businessMetrics)

	readinessDeps := map[string]handler.Pinger{
		"database": handler.PingerFunc(func(ctx context.Context) error {
			return db.Ping()
		}),
	}
	if redisClient != nil {
		readinessDeps["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	systemHandler := handler.NewSystemHandler(version, readinessDeps)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow))
	}

	// Tighter per-username limit on credential guessing
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authHandler.SetLoginGuard(middleware.RateLimitByKey(loginLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
	}

	// Probes stay outside the versioned, authenticated API
	systemHandler.RegisterProbes(engine)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	r.Register(systemHandler).
		Register(authHandler).
		Register(userHandler).
		Register(roleHandler).
		Register(departmentHandler).
		Register(employeeHandler).
		Register(orgChartHandler).
		Register(assetHandler).
		Register(jobDescHandler).
		Register(competencyHandler).
		Register(assessmentHandler).
		Register(trainingHandler).
		Register(gradingHandler).
		Register(bulkHandler)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
