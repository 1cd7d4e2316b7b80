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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/arjunrk/feeledger/docs" // generated swagger docs
	appControllers "github.com/arjunrk/feeledger/internal/app/controllers"
	appMigrations "github.com/arjunrk/feeledger/internal/app/migrations"
	appRepos "github.com/arjunrk/feeledger/internal/app/repositories"
	appRoutes "github.com/arjunrk/feeledger/internal/app/routes"
	appServices "github.com/arjunrk/feeledger/internal/app/services"
	"github.com/arjunrk/feeledger/internal/config"
	"github.com/arjunrk/feeledger/internal/db"
	appMiddleware "github.com/arjunrk/feeledger/internal/middleware"
	pkgAuth "github.com/arjunrk/feeledger/internal/pkg/auth"
	"github.com/arjunrk/feeledger/internal/pkg/helpers"
	"github.com/arjunrk/feeledger/internal/pkg/logger"
	"github.com/arjunrk/feeledger/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	DepartmentService     appServices.DepartmentService
	StudentService        appServices.StudentService
	TransactionService    appServices.TransactionService
	FeeConfigService      appServices.FeeConfigService
	ImportService         appServices.ImportService
	ReportService         appServices.ReportService
	AuthController        *appControllers.AuthController
	DepartmentController  *appControllers.DepartmentController
	StudentController     *appControllers.StudentController
	TransactionController *appControllers.TransactionController
	FeeConfigController   *appControllers.FeeConfigController
	UploadController      *appControllers.UploadController
	ReportController      *appControllers.ReportController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
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
// seeds reference data.
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
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		lgr,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.RemarkRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.FeeConfigRepository,
	)
	deps.TransactionService = appServices.NewTransactionService(
		deps.Repos.TransactionRepository,
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.FeeConfigRepository,
	)
	deps.FeeConfigService = appServices.NewFeeConfigService(
		deps.Repos.FeeConfigRepository,
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		lgr,
	)
	deps.ImportService = appServices.NewImportService(
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.FeeConfigRepository,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.TransactionRepository,
		deps.Repos.StudentRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.TransactionService)
	deps.TransactionController = appControllers.NewTransactionController(deps.TransactionService)
	deps.FeeConfigController = appControllers.NewFeeConfigController(deps.FeeConfigService)
	deps.UploadController = appControllers.NewUploadController(deps.ImportService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

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

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DepartmentController,
		deps.StudentController,
		deps.TransactionController,
		deps.FeeConfigController,
		deps.UploadController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
