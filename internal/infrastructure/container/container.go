package container

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/portoo/portoo-backend/internal/config"
	"github.com/portoo/portoo-backend/internal/delivery/http"
	"github.com/portoo/portoo-backend/internal/delivery/http/handler"
	"github.com/portoo/portoo-backend/internal/delivery/http/middleware"
	"github.com/portoo/portoo-backend/internal/delivery/http/web"
	"github.com/portoo/portoo-backend/internal/infrastructure/database"
	"github.com/portoo/portoo-backend/internal/infrastructure/gemini"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/infrastructure/server"
	"github.com/portoo/portoo-backend/internal/infrastructure/storage"
	"github.com/portoo/portoo-backend/internal/repository"
	"github.com/portoo/portoo-backend/internal/repository/cache"
	"github.com/portoo/portoo-backend/internal/repository/memory"
	"github.com/portoo/portoo-backend/internal/repository/postgres"
	"github.com/portoo/portoo-backend/internal/usecase/auth"
	"github.com/portoo/portoo-backend/internal/usecase/bio"
	"github.com/portoo/portoo-backend/internal/usecase/contact"
	"github.com/portoo/portoo-backend/internal/usecase/explore"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
	"github.com/portoo/portoo-backend/internal/usecase/upload"
	"github.com/portoo/portoo-backend/internal/usecase/username"
	"github.com/portoo/portoo-backend/internal/validation"
	"github.com/redis/go-redis/v9"
)

// objectStore is what the container needs from a storage backend
type objectStore interface {
	upload.ObjectStore
	io.Closer
}

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Log     *logger.Logger
	DB      *sqlx.DB
	Redis   *redis.Client
	Storage objectStore
	Gemini  *gemini.GeminiClient
	Server  *server.Server
}

// NewContainer wires storage, use cases and the HTTP server. Optional backends
// (Redis, Gemini) degrade with a warning instead of failing startup.
func NewContainer(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *Container, err error) {
	c := &Container{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	repos, tx, caps, err := c.initRepositories(ctx)
	if err != nil {
		return nil, err
	}

	var directoryCache repository.DirectoryCache = repository.NoopCache{}
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, directory cache disabled", "error", err)
		} else {
			c.Redis = client
			directoryCache = cache.NewDirectoryCache(client, cfg.Redis.CacheTTL, log)
		}
	}

	var files *handler.FileHandler
	switch cfg.Storage.Type {
	case config.StorageMemory:
		mem := storage.NewMemoryStore(cfg.App.BaseURL + "/files")
		c.Storage = mem
		files = handler.NewFileHandler(mem)
	default:
		gcs, err := storage.NewGCSStore(ctx, &cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		c.Storage = gcs
	}

	var generator bio.DraftGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("Gemini client unavailable, using template bio drafts", "error", err)
		} else {
			c.Gemini = client
			generator = client
		}
	}

	pages, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	v := validation.New()

	// Initialize use cases
	portfolioUseCase := portfolio.NewPortfolioUseCase(repos, tx, caps, directoryCache, v, cfg.App.BaseURL, log)
	usernameUseCase := username.NewUsernameUseCase(repos.Portfolios, nil, log)
	uploadUseCase := upload.NewUploadUseCase(c.Storage, cfg.Storage.MaxUploadBytes, log)
	contactUseCase := contact.NewContactUseCase(repos.Portfolios, repos.Contacts, v, log)
	exploreUseCase := explore.NewExploreUseCase(repos.Portfolios, repos.Projects, directoryCache, log)
	bioUseCase := bio.NewBioUseCase(generator, v, log)

	router := http.NewRouter(
		http.Handlers{
			Username:  handler.NewUsernameHandler(usernameUseCase),
			Portfolio: handler.NewPortfolioHandler(portfolioUseCase),
			Upload:    handler.NewUploadHandler(uploadUseCase),
			Contact:   handler.NewContactHandler(contactUseCase),
			Explore:   handler.NewExploreHandler(exploreUseCase),
			Bio:       handler.NewBioHandler(bioUseCase),
			Page:      handler.NewPageHandler(portfolioUseCase, pages, log),
			Files:     files,
		},
		middleware.NewAuthMiddleware(auth.NewTokenVerifier(cfg.Auth.JWTSecret), log),
		cfg.Server.CORSOrigins,
		log,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

func (c *Container) initRepositories(ctx context.Context) (repository.Repositories, repository.Transactor, repository.Capabilities, error) {
	cfg := c.Config
	if cfg.Database.Driver == config.DriverMemory {
		c.Log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return store.Repositories(), store, repository.Capabilities{Experiences: true}, nil
	}

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return repository.Repositories{}, nil, repository.Capabilities{}, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return repository.Repositories{}, nil, repository.Capabilities{}, err
		}
	}

	caps, err := database.DetectCapabilities(ctx, db)
	if err != nil {
		return repository.Repositories{}, nil, repository.Capabilities{}, err
	}
	if !caps.Experiences {
		c.Log.Warn("experiences table not found, experience data will be skipped")
	}

	return postgres.NewRepositories(db), postgres.NewTransactor(db), caps, nil
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error
	if c.Gemini != nil {
		errs = append(errs, c.Gemini.Close())
	}
	if c.Storage != nil {
		errs = append(errs, c.Storage.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
