package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appAuth "github.com/doruk/eduhub/internal/app/auth"
	appControllers "github.com/doruk/eduhub/internal/app/controllers"
	appMigrations "github.com/doruk/eduhub/internal/app/migrations"
	appRepos "github.com/doruk/eduhub/internal/app/repositories"
	appRoutes "github.com/doruk/eduhub/internal/app/routes"
	appServices "github.com/doruk/eduhub/internal/app/services"
	"github.com/doruk/eduhub/internal/config"
	"github.com/doruk/eduhub/internal/db"
	appMiddleware "github.com/doruk/eduhub/internal/middleware"
	pkgAuth "github.com/doruk/eduhub/internal/pkg/auth"
	"github.com/doruk/eduhub/internal/pkg/email"
	"github.com/doruk/eduhub/internal/pkg/filestorage"
	"github.com/doruk/eduhub/internal/pkg/helpers"
	"github.com/doruk/eduhub/internal/pkg/logger"
	"github.com/doruk/eduhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	UserService       appServices.UserService
	CourseService     appServices.CourseService
	EnrollmentService appServices.EnrollmentService
	AssignmentService appServices.AssignmentService
	QuizService       appServices.QuizService
	DiscussionService appServices.DiscussionService
	ForumService      appServices.ForumService
	EventService      appServices.EventService
	ResourceService   appServices.ResourceService
	ProfileService    appServices.ProfileService

	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	AssignmentController *appControllers.AssignmentController
	QuizController       *appControllers.QuizController
	DiscussionController *appControllers.DiscussionController
	ForumController      *appControllers.ForumController
	EventController      *appControllers.EventController
	ResourceController   *appControllers.ResourceController
	ProfileController    *appControllers.ProfileController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	EmailService   email.EmailService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create the bootstrap admin account after migrations
	if err := seed.CreateDefaultData(context.Background(), cfg, dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	dbPool := database.Pool

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.ProfileRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.AuthzService,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.ActivityLogRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		deps.EmailService,
		lgr,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		database,
		cfg.Enrollment.AllowResubmission,
		lgr,
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.AssignmentRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		deps.FileStorage,
		lgr,
	)
	deps.QuizService = appServices.NewQuizService(
		deps.Repos.QuizRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		lgr,
	)
	deps.DiscussionService = appServices.NewDiscussionService(
		deps.Repos.DiscussionRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		lgr,
	)
	deps.ForumService = appServices.NewForumService(
		deps.Repos.ForumRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		lgr,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		lgr,
	)
	deps.ResourceService = appServices.NewResourceService(
		deps.Repos.ResourceRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		deps.FileStorage,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.ProfileRepository,
		deps.Repos.UserRepository,
		database,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, lgr)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, lgr)
	deps.QuizController = appControllers.NewQuizController(deps.QuizService, lgr)
	deps.DiscussionController = appControllers.NewDiscussionController(deps.DiscussionService, lgr)
	deps.ForumController = appControllers.NewForumController(deps.ForumService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.AssignmentController,
		deps.QuizController,
		deps.DiscussionController,
		deps.ForumController,
		deps.EventController,
		deps.ResourceController,
		deps.ProfileController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
