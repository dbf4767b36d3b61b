package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/controller"
	"skill_insight_backend/internal/repository"
	"skill_insight_backend/internal/service"
	"skill_insight_backend/pkg/database"
	"skill_insight_backend/pkg/logger"
	"skill_insight_backend/pkg/monitoring"
	"skill_insight_backend/pkg/security"
	"skill_insight_backend/pkg/tracing"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	session *repository.SessionRepository
	profile *repository.TargetProfileRepository
	account *repository.ServiceAccountRepository
}

type services struct {
	settings    *service.AnalyticsSettings
	analyzer    *service.AnalyzerService
	fingerprint *service.FingerprintService
	gap         *service.GapService
	report      *service.ReportService
	archive     *service.ArchiveService
	profile     *service.ProfileService
	auth        *service.AuthService
	ingest      *service.IngestService
	feedHub     *service.FeedHub
}

type controllers struct {
	auth       *controller.AuthController
	submission *controller.SubmissionController
	learner    *controller.LearnerController
	profile    *controller.ProfileController
	account    *controller.AccountController
	feed       *controller.FeedController
	health     *controller.HealthController
}

// RegisterConfigCallback 注册配置热更新回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置文件变更后依次执行全部回调
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		session: repository.NewSessionRepository(db),
		profile: repository.NewTargetProfileRepository(db),
		account: repository.NewServiceAccountRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.settings = service.NewAnalyticsSettings(&cfg.Analytics)
	s.analyzer = service.NewAnalyzerService()
	s.fingerprint = service.NewFingerprintService(repos.session)
	s.gap = service.NewGapService(repos.profile, s.fingerprint, s.settings)
	s.report = service.NewReportService(s.gap, s.fingerprint, repos.session, s.settings)
	s.archive = service.NewArchiveService(cfg, s.report)
	s.profile = service.NewProfileService(repos.profile)
	s.auth = service.NewAuthService(repos.account, cfg)

	s.feedHub = service.NewFeedHub(rdb)
	go s.feedHub.Run()

	s.ingest = service.NewIngestService(
		s.analyzer,
		s.report,
		repos.session,
		service.NewRedisReservations(rdb),
		s.feedHub,
		s.settings,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, a.Config.JWT.ExpireTime),
		submission: controller.NewSubmissionController(s.ingest),
		learner:    controller.NewLearnerController(s.fingerprint, s.gap, s.report, s.archive),
		profile:    controller.NewProfileController(s.profile),
		account:    controller.NewAccountController(s.auth),
		feed:       controller.NewFeedController(s.feedHub),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// release 模式默认跳过自动迁移，-migrate 或 -migrate-only 可显式触发
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 引导管理员账号，已存在时为空操作
	if err := services.auth.EnsureBootstrapAccount(); err != nil {
		logger.Log.Fatal("Failed to ensure bootstrap account", zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("skill-insight", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		// 停机时在 Run 里统一关闭，避免进程还在服务就失去追踪
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// 本地归档可直接经静态路由取回
	if cfg.Storage.Type == "local" {
		router.Static("/archives", cfg.Storage.LocalPath)
	}

	// 配置热更新时重载分析阈值
	app.RegisterConfigCallback(func(next *config.Config) {
		services.settings.Apply(&next.Analytics)
		logger.Log.Info("Analytics thresholds reloaded",
			zap.Float64("masteryThreshold", next.Analytics.MasteryThreshold),
			zap.Int("maxRecommendations", next.Analytics.MaxRecommendations))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 清理 WebSocket 连接和 Redis 观察者计数
	if a.services != nil && a.services.feedHub != nil {
		a.services.feedHub.Stop()
	}

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
