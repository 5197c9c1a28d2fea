package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"cvwizard-backend/internal/compose"
	"cvwizard-backend/internal/export"
	"cvwizard-backend/internal/forms"
	"cvwizard-backend/internal/shared/config"
	"cvwizard-backend/internal/shared/server"
	"cvwizard-backend/internal/shared/storage/db"
	"cvwizard-backend/internal/shared/storage/files"
)

// App holds the wired application dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         *files.Store
	FormsRepo     forms.Repo
	FormsService  *forms.Service
	ExportService *export.Service
	WizardHandler *forms.Handler
	ExportHandler *export.Handler
}

// Build prepares all dependencies and the router. In dev, a missing or
// unreachable database degrades to in-memory form state.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo forms.Repo
	if sqlDB != nil {
		repo = &forms.PGRepo{DB: sqlDB}
	} else {
		repo = forms.NewMemoryRepo()
	}

	formsSvc := &forms.Service{Repo: repo, TTL: cfg.SessionTTL}
	store := files.New(cfg.GeneratedDir)
	exportSvc := &export.Service{
		States:    formsSvc,
		Assembler: compose.Assembler{},
		Store:     store,
		Chain:     export.NewChain(cfg.PDFConverters, cfg.ConvertTimeout),
	}

	app := &App{
		Config:        cfg,
		DB:            sqlDB,
		Store:         store,
		FormsRepo:     repo,
		FormsService:  formsSvc,
		ExportService: exportSvc,
		WizardHandler: forms.NewHandler(formsSvc),
		ExportHandler: export.NewHandler(exportSvc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		WizardHandler: app.WizardHandler,
		ExportHandler: app.ExportHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.Env == "dev" {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory form state")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "dev" {
			log.Printf("bootstrap: database connect failed; using in-memory form state: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if cfg.Env == "dev" {
			log.Printf("bootstrap: migrations failed; using in-memory form state: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}
