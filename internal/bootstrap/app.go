package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/history"
	"outreach-backend/internal/llm"
	"outreach-backend/internal/llm/gemini"
	"outreach-backend/internal/llm/openai"
	"outreach-backend/internal/outreach"
	"outreach-backend/internal/prefs"
	"outreach-backend/internal/resumes"
	"outreach-backend/internal/shared/config"
	"outreach-backend/internal/shared/server"
	"outreach-backend/internal/shared/storage/db"
	"outreach-backend/internal/shared/storage/object"
	localstore "outreach-backend/internal/shared/storage/object/local"
	s3store "outreach-backend/internal/shared/storage/object/s3"
	"outreach-backend/internal/wizard"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	LLM        llm.Client
	WizardRepo wizard.Repo

	ResumesService *resumes.Service
	HistoryService *history.Service
	WizardService  *wizard.Service
	PrefsStore     *prefs.Store

	WizardHandler  *wizard.Handler
	HistoryHandler *history.Handler
	PrefsHandler   *prefs.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	wizardRepo, err := buildWizardRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		LLM:        llmClient,
		WizardRepo: wizardRepo,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		WizardHandler:  app.WizardHandler,
		HistoryHandler: app.HistoryHandler,
		PrefsHandler:   app.PrefsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using file-backed history")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using file-backed history: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using file-backed history: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildWizardRepo uses Redis when configured, so multiple replicas share
// sessions and the busy guard; otherwise sessions stay in process memory.
func buildWizardRepo(ctx context.Context, cfg config.Config) (wizard.Repo, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return wizard.NewMemoryRepo(), nil
	}
	repo, err := wizard.NewRedisRepo(ctx, cfg.RedisAddr)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis connect failed; using in-memory sessions: %v", err)
			return wizard.NewMemoryRepo(), nil
		}
		return nil, err
	}
	return repo, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "none":
		return llm.PlaceholderClient{}, nil
	default:
		client, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func buildServices(app *App) {
	var histRepo history.Repo
	if app.DB != nil {
		histRepo = &history.PGRepo{DB: app.DB}
	} else {
		histRepo = history.NewFileRepo(app.Config.DataDir)
	}
	histSvc := history.NewService(histRepo)

	resumeSvc := &resumes.Service{
		Store: app.Store,
		Repo:  resumes.NewMemoryRepo(),
	}

	wizardSvc := &wizard.Service{
		Repo:    app.WizardRepo,
		Resumes: resumeSvc,
		LLM:     app.LLM,
		Drafter: &outreach.Drafter{LLM: app.LLM},
		Dispatcher: &outreach.Dispatcher{
			History: histSvc,
			Delay:   app.Config.DispatchDelay,
		},
	}

	prefStore := prefs.NewStore(app.Config.DataDir)

	app.ResumesService = resumeSvc
	app.HistoryService = histSvc
	app.WizardService = wizardSvc
	app.PrefsStore = prefStore
	app.WizardHandler = wizard.NewHandler(wizardSvc)
	app.HistoryHandler = history.NewHandler(histSvc)
	app.PrefsHandler = prefs.NewHandler(prefStore)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
