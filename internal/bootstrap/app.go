package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/config"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/database"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/handler"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/logger"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/repository"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/service"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/session"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/pkg/workbook"
)

type App struct {
	Echo     *echo.Echo
	DB       *sql.DB
	Registry *dashboard.Registry
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Load the dashboard definition
	def, err := dashboard.LoadDefinition(config.DefaultEnvConfig.DASHBOARD_CONFIG_PATH)
	if err != nil {
		return fmt.Errorf("failed to load dashboard definition: %w", err)
	}
	a.Registry = dashboard.NewRegistry(def)
	logger.InfoLog(ctx, "Dashboard definition loaded: %s (%d views)", def.Name, len(def.Views))

	// Initialize database connection
	dbConfig := database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	a.Registry.RegisterSource("postgres", repository.NewPostgresSource(db))

	// Optional backends
	if config.DefaultEnvConfig.ELASTIC_ENABLED {
		ec, err := database.NewElasticClient(config.DefaultEnvConfig.ELASTIC_URL)
		if err != nil {
			return fmt.Errorf("failed to initialize elasticsearch: %w", err)
		}
		a.Registry.RegisterSource("elastic", repository.NewElasticSource(ec.Raw()))
	}
	if config.DefaultEnvConfig.DATASTORE_ENABLED {
		dc, err := database.NewDatastoreClient(ctx, config.DefaultEnvConfig.DATASTORE_PROJECT_ID)
		if err != nil {
			return fmt.Errorf("failed to initialize datastore: %w", err)
		}
		a.Registry.RegisterSource("datastore", repository.NewDatastoreSource(dc.Raw()))
	}

	// Host change notifications invalidate cached column lists
	cache := session.NewColumnCache()
	a.Registry.OnFilterChanged(cache.Invalidate)
	a.Registry.OnParameterChanged(func(string) { cache.Clear() })

	// Optional workbook layout template
	var tmpl *workbook.LayoutTemplate
	if path := config.DefaultEnvConfig.WORKBOOK_TEMPLATE_PATH; path != "" {
		tmpl, err = workbook.LoadTemplate(path)
		if err != nil {
			return fmt.Errorf("failed to load workbook template: %w", err)
		}
	}

	// Initialize dependencies
	dashSvc := service.NewDashboardService(
		a.Registry,
		cache,
		config.DefaultEnvConfig.PEEK_ROW_LIMIT,
		config.DefaultEnvConfig.FETCH_WORKERS,
		config.DefaultEnvConfig.FETCH_RETRIES,
		config.DefaultEnvConfig.FETCH_RETRY_BACKOFF,
	)
	exportSvc := service.NewExportService(a.Registry, cache, config.DefaultEnvConfig.EXPORT_DIR, tmpl)

	dashHandler := handler.NewDashboardHandler(dashSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	eventsHandler := handler.NewEventsHandler(a.Registry)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(dashHandler, exportHandler, eventsHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(dash *handler.DashboardHandler, export *handler.ExportHandler, events *handler.EventsHandler) {
	api := a.Echo.Group("/api/v1")

	api.GET("/dashboard", dash.GetDashboardHandler)
	api.GET("/views", dash.ListViewsHandler)
	api.GET("/views/:id/columns", dash.ViewColumnsHandler)
	api.POST("/refresh", dash.RefreshHandler)

	api.POST("/export", export.ExportHandler)
	api.GET("/exports/:filename", export.DownloadHandler)

	eventGroup := api.Group("/events")
	eventGroup.POST("/filter-changed", events.FilterChangedHandler)
	eventGroup.POST("/parameter-changed", events.ParameterChangedHandler)
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(fmt.Sprintf(":%d", config.DefaultEnvConfig.APP_PORT))
}
