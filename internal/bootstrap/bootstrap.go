package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/omkar/campuslms/internal/app/controllers"
	appMigrations "github.com/omkar/campuslms/internal/app/migrations"
	appRepos "github.com/omkar/campuslms/internal/app/repositories"
	appRoutes "github.com/omkar/campuslms/internal/app/routes"
	appServices "github.com/omkar/campuslms/internal/app/services"
	"github.com/omkar/campuslms/internal/config"
	"github.com/omkar/campuslms/internal/db"
	appMiddleware "github.com/omkar/campuslms/internal/middleware"
	pkgAuth "github.com/omkar/campuslms/internal/pkg/auth"
	"github.com/omkar/campuslms/internal/pkg/email"
	"github.com/omkar/campuslms/internal/pkg/helpers"
	"github.com/omkar/campuslms/internal/pkg/logger"
	"github.com/omkar/campuslms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	ImportService          *appServices.ImportService
	PeopleService          *appServices.PeopleService
	ClassService           *appServices.ClassService
	AnnouncementService    *appServices.AnnouncementService
	MaterialService        *appServices.MaterialService
	HealthController       *appControllers.HealthController
	AuthController         *appControllers.AuthController
	ImportController       *appControllers.ImportController
	PeopleController       *appControllers.PeopleController
	ClassController        *appControllers.ClassController
	AnnouncementController *appControllers.AnnouncementController
	MaterialController     *appControllers.MaterialController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Mailer                 email.Service
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env file is fine, environment variables may come from the
	// process environment instead.
	_ = godotenv.Load()

	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
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
// seeds the default admin account.
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

	migrationsDir := config.GetEnv("MIGRATIONS_DIR", "migrations")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewSMTPService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AdminRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.StudentRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		deps.Mailer,
		lgr,
	)

	deps.ImportService = appServices.NewImportService(
		deps.Repos.TeacherRepository,
		deps.Repos.StudentRepository,
		deps.Repos.ClassRepository,
		deps.Repos.EnrollmentRepository,
		deps.Mailer,
		cfg.Import.DefaultAcademicYear,
		lgr,
	)

	deps.PeopleService = appServices.NewPeopleService(
		deps.Repos.TeacherRepository,
		deps.Repos.StudentRepository,
		deps.Repos.ClassRepository,
		deps.Repos.EnrollmentRepository,
		lgr,
	)

	deps.ClassService = appServices.NewClassService(
		deps.Repos.ClassRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.EnrollmentRepository,
		lgr,
	)

	deps.AnnouncementService = appServices.NewAnnouncementService(
		deps.Repos.AnnouncementRepository,
		deps.Repos.ClassRepository,
		lgr,
	)

	deps.MaterialService = appServices.NewMaterialService(
		deps.Repos.MaterialRepository,
		deps.Repos.ClassRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.HealthController = appControllers.NewHealthController(dbPool)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ImportController = appControllers.NewImportController(deps.ImportService, lgr)
	deps.PeopleController = appControllers.NewPeopleController(deps.PeopleService, lgr)
	deps.ClassController = appControllers.NewClassController(deps.ClassService, lgr)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService, lgr)
	deps.MaterialController = appControllers.NewMaterialController(deps.MaterialService, lgr)

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

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.AuthController,
		deps.ImportController,
		deps.PeopleController,
		deps.ClassController,
		deps.AnnouncementController,
		deps.MaterialController,
		deps.AuthMiddleware,
	)

	return router
}
