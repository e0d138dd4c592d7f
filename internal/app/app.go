package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/controller"
	"sensory_sheets_backend/internal/render"
	"sensory_sheets_backend/internal/repository"
	"sensory_sheets_backend/internal/service"
	"sensory_sheets_backend/internal/util"
	"sensory_sheets_backend/pkg/configwatcher"
	"sensory_sheets_backend/pkg/database"
	"sensory_sheets_backend/pkg/logger"
	"sensory_sheets_backend/pkg/monitoring"
	"sensory_sheets_backend/pkg/security"
	"sensory_sheets_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	usage     *repository.UsageRepository
	analytics *repository.AnalyticsRepository
	export    *repository.ExportRepository
}

type services struct {
	storage   *service.StorageService
	auth      *service.AuthService
	usage     *service.UsageService
	wordBank  *service.WordBankService
	template  *service.TemplateService
	filler    *service.FillerService
	worksheet *service.WorksheetService
	analytics *service.AnalyticsService
	export    *service.ExportService
	checkout  *service.CheckoutService
}

type controllers struct {
	auth      *controller.AuthController
	worksheet *controller.WorksheetController
	practice  *controller.PracticeController
	usage     *controller.UsageController
	checkout  *controller.CheckoutController
	analytics *controller.AnalyticsController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		usage:     repository.NewUsageRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
		export:    repository.NewExportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.usage = service.NewUsageService(repos.usage, cfg.Quota.FreeMonthlyLimit)

	s.wordBank = service.NewWordBankService(cfg, rdb, nil)
	s.template = service.NewTemplateService(cfg)
	s.filler = service.NewFillerService(s.wordBank, nil)
	s.worksheet = service.NewWorksheetService(s.wordBank, s.template, s.filler, s.usage)

	s.analytics = service.NewAnalyticsService(repos.analytics)
	s.export = service.NewExportService(s.storage, repos.export)
	s.checkout = service.NewCheckoutService(repos.user, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		worksheet: controller.NewWorksheetController(s.worksheet, s.analytics, s.export),
		practice:  controller.NewPracticeController(s.wordBank),
		usage:     controller.NewUsageController(s.usage),
		checkout:  controller.NewCheckoutController(s.checkout),
		analytics: controller.NewAnalyticsController(s.analytics),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	// 认证中间件从上下文取配置
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Redis 只承担数据集缓存，连不上降级为直读数据源
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, dataset caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	render.SetIconFont(cfg.Content.FontPath)

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("sensory-sheets", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	// 配额上限等生成参数支持热更新
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.usage.FreeLimit = newCfg.Quota.FreeMonthlyLimit
		logger.Log.Info("Config reloaded", zap.Int("freeMonthlyLimit", newCfg.Quota.FreeMonthlyLimit))
	})
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		for _, callback := range app.configCallbacks {
			callback(newCfg)
		}
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
