package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"renova_backend/internal/config"
	"renova_backend/internal/controller"
	"renova_backend/internal/repository"
	"renova_backend/internal/service"
	"renova_backend/pkg/database"
	"renova_backend/pkg/logger"
	"renova_backend/pkg/monitoring"
	"renova_backend/pkg/security"
	"renova_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user          *repository.UserRepository
	questionnaire *repository.QuestionnaireRepository
	content       *repository.ContentRepository
	progress      *repository.ProgressRepository
	preference    *repository.PreferenceRepository
	achievement   *repository.AchievementRepository
}

type services struct {
	auth            *service.AuthService
	user            *service.UserService
	catalog         *service.CatalogService
	profile         *service.ProfileService
	personalization *service.PersonalizationService
	progress        *service.ProgressService
	achievement     *service.AchievementService
	questionnaire   *service.QuestionnaireService
	contentAdmin    *service.ContentAdminService
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	questionnaire *controller.QuestionnaireController
	track         *controller.TrackController
	progress      *controller.ProgressController
	adminContent  *controller.AdminContentController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		questionnaire: repository.NewQuestionnaireRepository(db),
		content:       repository.NewContentRepository(db),
		progress:      repository.NewProgressRepository(db),
		preference:    repository.NewPreferenceRepository(db),
		achievement:   repository.NewAchievementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.preference)
	s.catalog = service.NewCatalogService(repos.content, rdb)
	s.profile = service.NewProfileService(repos.questionnaire, repos.progress, repos.preference, repos.user)
	s.personalization = service.NewPersonalizationService(s.profile, s.catalog, repos.progress)
	s.achievement = service.NewAchievementService(repos.achievement)
	s.progress = service.NewProgressService(repos.progress, s.catalog, s.achievement)
	s.questionnaire = service.NewQuestionnaireService(repos.questionnaire, s.progress, s.catalog)
	s.contentAdmin = service.NewContentAdminService(repos.content, s.catalog)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth, s.user),
		user:          controller.NewUserController(s.user),
		questionnaire: controller.NewQuestionnaireController(s.questionnaire),
		track:         controller.NewTrackController(s.catalog, s.personalization, s.progress),
		progress:      controller.NewProgressController(s.progress, s.achievement),
		adminContent:  controller.NewAdminContentController(s.contentAdmin),
		health:        controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		if cfg.MigrateOnly {
			logger.Log.Info("Migration finished, exiting")
			os.Exit(0)
		}
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
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("renova-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
