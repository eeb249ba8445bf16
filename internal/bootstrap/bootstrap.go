package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mertdogan/campusdesk/internal/app/controllers"
	appMigrations "github.com/mertdogan/campusdesk/internal/app/migrations"
	appRepos "github.com/mertdogan/campusdesk/internal/app/repositories"
	appRoutes "github.com/mertdogan/campusdesk/internal/app/routes"
	appServices "github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/config"
	"github.com/mertdogan/campusdesk/internal/db"
	appMiddleware "github.com/mertdogan/campusdesk/internal/middleware"
	pkgAuth "github.com/mertdogan/campusdesk/internal/pkg/auth"
	"github.com/mertdogan/campusdesk/internal/pkg/events"
	"github.com/mertdogan/campusdesk/internal/pkg/helpers"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
	"github.com/mertdogan/campusdesk/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services

	AuthController       *appControllers.AuthController
	DepartmentController *appControllers.DepartmentController
	CourseController     *appControllers.CourseController
	SubjectController    *appControllers.SubjectController
	StudentController    *appControllers.StudentController
	FacultyController    *appControllers.FacultyController
	NoticeController     *appControllers.NoticeController
	LeaveController      *appControllers.LeaveController
	FeeController        *appControllers.FeeController
	TransportController  *appControllers.TransportController
	EventsController     *appControllers.EventsController

	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Hub            *events.Hub
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding failures are logged but never block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Hub = events.NewHub(lgr.With().Str("component", "events").Logger())
	go deps.Hub.Run()

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Hub)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.Services.DepartmentService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.SubjectController = appControllers.NewSubjectController(deps.Services.SubjectService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.FacultyController = appControllers.NewFacultyController(deps.Services.FacultyService)
	deps.NoticeController = appControllers.NewNoticeController(deps.Services.NoticeService)
	deps.LeaveController = appControllers.NewLeaveController(deps.Services.LeaveService)
	deps.FeeController = appControllers.NewFeeController(deps.Services.FeeService)
	deps.TransportController = appControllers.NewTransportController(deps.Services.TransportService)
	deps.EventsController = appControllers.NewEventsController(deps.Hub)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" || strings.ToLower(cfg.Server.Mode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.DepartmentController,
		deps.CourseController,
		deps.SubjectController,
		deps.StudentController,
		deps.FacultyController,
		deps.NoticeController,
		deps.LeaveController,
		deps.FeeController,
		deps.TransportController,
		deps.EventsController,
		deps.AuthMiddleware,
	)
	appRoutes.SetupSwagger(router)

	lgr.Info().Msg("Router configured")
	return router
}
