package container

import (
	"context"
	"fmt"
	"time"

	"bookshelf-backend/internal/config"
	infraCache "bookshelf-backend/internal/infrastructure/cache"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/infrastructure/sqlite"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/pkg/kv"
	"bookshelf-backend/pkg/logger"

	libHandler "bookshelf-backend/internal/domains/library/handler"
	libRepo "bookshelf-backend/internal/domains/library/repository"
	libService "bookshelf-backend/internal/domains/library/service"
	readerHandler "bookshelf-backend/internal/domains/reader/handler"
	readerService "bookshelf-backend/internal/domains/reader/service"
)

const connectTimeout = 30 * time.Second

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Build order: config -> store -> repositories -> services -> handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	Store  kv.Store
	DB     *database.PostgresDB // only set for the postgres driver

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	DraftRepo libRepo.DraftRepository
	BookRepo  libRepo.BookRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	LibraryService libService.ServiceInterface
	ReaderService  readerService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	LibraryHandler *libHandler.LibraryHandler
	ReaderHandler  *readerHandler.ReaderHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads the configuration from the environment and builds the dependency graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(context.Background(), cfg)
}

// NewWithConfig builds the dependency graph from an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Info("Initializing container", map[string]interface{}{
		"env":    cfg.App.Environment,
		"driver": cfg.Store.Driver,
	})

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: OPEN KV STORE
	// ========================================
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	store, db, err := OpenStore(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	c.Store = store
	c.DB = db

	// ========================================
	// STEP 2: REPOSITORIES
	// ========================================
	c.DraftRepo = libRepo.NewDraftRepository(c.Store)
	c.BookRepo = libRepo.NewBookRepository(c.Store)

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	c.LibraryService = libService.NewLibraryService(c.DraftRepo, c.BookRepo)
	c.ReaderService = readerService.NewReaderService(c.LibraryService, cfg.Reader.CharsPerPage)

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.LibraryHandler = libHandler.NewLibraryHandler(c.LibraryService)
	c.ReaderHandler = readerHandler.NewReaderHandler(c.ReaderService)

	logger.Info("Container initialized", nil)
	return c, nil
}

// OpenStore opens the kv.Store selected by cfg.Store.Driver.
// For the postgres driver the owning PostgresDB is returned too so it can be closed.
func OpenStore(ctx context.Context, cfg *config.Config) (kv.Store, *database.PostgresDB, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return kv.NewMemoryStore(), nil, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil

	case config.DriverRedis:
		s := infraCache.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		if err := s.Connect(ctx); err != nil {
			_ = s.Close()
			return nil, nil, err
		}
		return s, nil, nil

	case config.DriverPostgres:
		dbConfig := cfg.Store.Postgres
		db := database.NewPostgresDB(&dbConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, nil, err
		}
		s, err := database.NewKVStore(ctx, db.Pool, cfg.Store.PGTable)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, db, nil

	case config.DriverMinIO:
		s, err := storage.NewObjectStore(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// HealthCheck pings the configured store.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.Store == nil {
		return fmt.Errorf("store not initialized")
	}
	return c.Store.Ping(ctx)
}

// Cleanup releases the store and any database pool.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			logger.Error("Failed to close store", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}
}
