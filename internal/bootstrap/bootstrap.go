package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pskth/attendance-management-system/internal/app/controllers"
	"github.com/pskth/attendance-management-system/internal/app/migrations"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/app/routes"
	"github.com/pskth/attendance-management-system/internal/app/services"
	"github.com/pskth/attendance-management-system/internal/config"
	"github.com/pskth/attendance-management-system/internal/db"
	"github.com/pskth/attendance-management-system/internal/middleware"
	"github.com/pskth/attendance-management-system/internal/pkg/auth"
	"github.com/pskth/attendance-management-system/internal/pkg/helpers"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
	"github.com/pskth/attendance-management-system/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Store          *repositories.Store
	JWTService     *auth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
	Controllers    routes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds the
// default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := migrations.NewMigrator(database.Pool).Run(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, err
	}
	if err := seed.Run(ctx, repositories.NewStore(database), cfg); err != nil {
		lgr.Error().Err(err).Msg("Seed error")
		database.Close()
		return nil, err
	}
	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	store := repositories.NewStore(database)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	resolver := services.NewResolver(store)
	offeringService := services.NewOfferingService(store)
	enrollmentService := services.NewEnrollmentService(store)
	importService := services.NewImportService(store, resolver, offeringService, enrollmentService)
	deletionService := services.NewDeletionService(store)
	authService := services.NewAuthService(store, jwtService)
	collegeService := services.NewCollegeService(store)
	departmentService := services.NewDepartmentService(store)
	courseService := services.NewCourseService(store)
	yearService := services.NewAcademicYearService(store)
	userService := services.NewUserService(store)

	return &Dependencies{
		Store:          store,
		JWTService:     jwtService,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		Controllers: routes.Controllers{
			Auth:         controllers.NewAuthController(authService),
			College:      controllers.NewCollegeController(collegeService, deletionService),
			Department:   controllers.NewDepartmentController(departmentService, deletionService),
			Course:       controllers.NewCourseController(courseService, deletionService),
			AcademicYear: controllers.NewAcademicYearController(yearService),
			Offering:     controllers.NewOfferingController(offeringService, enrollmentService),
			Import:       controllers.NewImportController(importService),
			User:         controllers.NewUserController(userService, deletionService),
		},
		Logger: lgr,
	}
}

// SetupRouter creates the gin engine and mounts every route.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(deps.Logger))

	routes.Setup(engine, deps.Controllers, deps.AuthMiddleware)
	return engine
}

// requestLogger logs one line per request with method, path, status and
// latency.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lgr.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
