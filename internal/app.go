// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "member-service/internal/api"
	"member-service/internal/api/handler"
	"member-service/internal/config"
	"member-service/internal/repository"
	"member-service/internal/repository/postgres"
	"member-service/internal/seed"
	"member-service/internal/service"
	"member-service/internal/util"
	"member-service/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	MemberRepository repository.MemberRepository

	// Services
	MemberService service.MemberService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.MemberRepository = postgres.NewMemberRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Optionally seed sample data (opt-in via DB_SEED)
	if app.Config.SeedData {
		if err := seed.Members(ctx, app.DB); err != nil {
			return fmt.Errorf("failed to seed sample members: %w", err)
		}
		app.Logger.Info("Sample members seeded.")
	}

	// 6. Initialize Services
	app.MemberService = service.NewMemberService(app.DB, app.MemberRepository)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	memberHandler := handler.NewMemberHandler(app.MemberService, app.Logger)
	app.HTTPHandler = router.NewRouter(memberHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
