package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "jobboard-backend/internal/auth"
	"jobboard-backend/internal/contact"
	"jobboard-backend/internal/ingest"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/llm"
	llmgoogle "jobboard-backend/internal/llm/googleai"
	llmopenai "jobboard-backend/internal/llm/openai"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/server"
	"jobboard-backend/internal/shared/storage/db"
	"jobboard-backend/internal/shared/storage/object"
	localstore "jobboard-backend/internal/shared/storage/object/local"
	s3store "jobboard-backend/internal/shared/storage/object/s3"
	"jobboard-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ImageStore
	LLM            llm.Client
	JobsRepo       jobs.JobsRepo
	UsersRepo      users.Repo
	JobsService    *jobs.Service
	UsersService   *users.Service
	IngestService  *ingest.Service
	JobsHandler    *jobs.Handler
	IngestHandler  *ingest.Handler
	AuthHandler    *googleauth.Handler
	ContactHandler *contact.Handler
	GoogleAuth     *googleauth.GoogleService
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

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		JobsHandler:   app.JobsHandler,
		IngestHandler: app.IngestHandler,
		AuthHandler: &server.AuthHandlers{
			Register: app.AuthHandler.Register,
			Login:    app.AuthHandler.Login,
			Logout:   app.AuthHandler.Logout,
			Me:       app.AuthHandler.Me,
		},
		ContactHandler: app.ContactHandler,
		GoogleAuth:     app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ImageStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicBaseURL)
	default:
		return localstore.New(cfg.LocalStoreDir, ""), nil
	}
}

// buildLLM never fails the boot. A missing key means extraction is disabled
// and uploads still go through with empty fields for manual entry.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if strings.TrimSpace(key) == "" {
			log.Printf("bootstrap: OPENAI_API_KEY is not set; extraction disabled")
			return llm.PlaceholderClient{}, nil
		}
		return llmopenai.NewClient(key, cfg.LLMModel)
	case "googleai":
		key := os.Getenv("GEMINI_API_KEY")
		if strings.TrimSpace(key) == "" {
			log.Printf("bootstrap: GEMINI_API_KEY is not set; extraction disabled")
			return llm.PlaceholderClient{}, nil
		}
		return llmgoogle.NewClient(ctx, key, cfg.LLMModel)
	default:
		log.Printf("bootstrap: no LLM provider configured; extraction disabled")
		return llm.PlaceholderClient{}, nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.JobsService = &jobs.Service{Repo: app.JobsRepo, Store: app.Store}
	app.UsersService = &users.Service{Repo: app.UsersRepo}
	app.IngestService = ingest.NewService(app.Store, ingest.NewExtractor(app.LLM), app.Config.ExtractTimeout)

	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.IngestHandler = ingest.NewHandler(app.IngestService)
	app.AuthHandler = &googleauth.Handler{Users: app.UsersService}

	if app.Config.SMTPUser != "" && app.Config.ContactRecipient != "" {
		app.ContactHandler = &contact.Handler{Mailer: contact.NewSMTPMailer(
			app.Config.SMTPHost,
			app.Config.SMTPPort,
			app.Config.SMTPUser,
			app.Config.SMTPPassword,
			app.Config.ContactRecipient,
		)}
	} else {
		app.ContactHandler = &contact.Handler{}
	}

	if app.Config.GoogleClientID != "" {
		app.GoogleAuth = googleauth.NewGoogleService(
			app.Config.GoogleClientID,
			app.Config.GoogleClientSecret,
			app.Config.GoogleRedirectURL,
			app.Config.AdminRedirectURL,
			app.UsersService,
		)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
