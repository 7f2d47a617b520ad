package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	infraCache "book-catalog/internal/infrastructure/cache"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/web"
	"book-catalog/pkg/cache"
	"book-catalog/pkg/jwt"

	// Book domain
	bookHandler "book-catalog/internal/domains/book/handler"
	bookRepo "book-catalog/internal/domains/book/repository"
	bookService "book-catalog/internal/domains/book/service"

	// User domain
	"book-catalog/internal/domains/user"
	userHandler "book-catalog/internal/domains/user/handler"
	userRepo "book-catalog/internal/domains/user/repository"
	userService "book-catalog/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependency graph của application
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // chỉ khi STORAGE_DRIVER=postgres
	SQLDB      *sql.DB              // nil khi STORAGE_DRIVER=memory
	Dialect    database.Dialect
	Cache      cache.Cache // Redis hoặc in-memory fallback
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	BookStore bookRepo.Store
	UserRepo  user.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	BookService       bookService.ServiceInterface
	BulkImportService bookService.BulkImportServiceInterface
	UserService       user.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	BookHandler       *bookHandler.Handler
	BulkImportHandler *bookHandler.BulkImportHandler
	AuthHandler       *userHandler.AuthHandler
	PageHandler       *web.PageHandler
}

// NewContainer build dependency graph theo thứ tự:
// storage -> cache -> repositories -> services -> seed user -> handlers
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("container initializing")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORAGE
	// ========================================
	if err := c.initStorage(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache(ctx)
	c.JWTManager = jwt.NewManager(cfg.Session.Secret, cfg.Session.TTL)

	// ========================================
	// STEP 3: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	// ========================================
	// STEP 5: SEED USER
	// ========================================
	if err := c.UserService.EnsureUser(ctx, cfg.Auth.SeedUsername, cfg.Auth.SeedPassword); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to seed user: %w", err)
	}

	// ========================================
	// STEP 6: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Str("storage", cfg.Storage.Driver).Msg("container ready")
	return c, nil
}

// initStorage mở SQL backend đã cấu hình và chạy migrations nếu bật auto migrate
func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db
		c.SQLDB = db.SQLDB()
		c.Dialect = database.DialectPostgres

	case config.DriverSQLite:
		db, err := database.OpenSQLite(c.Config.Storage.SQLitePath)
		if err != nil {
			return err
		}
		c.SQLDB = db
		c.Dialect = database.DialectSQLite

	case config.DriverMemory:
		return nil

	default:
		return fmt.Errorf("unsupported storage driver %q", c.Config.Storage.Driver)
	}

	if c.Config.Storage.AutoMigrate {
		if err := database.Migrate(ctx, c.SQLDB, c.Dialect); err != nil {
			return err
		}
		log.Info().Str("dialect", string(c.Dialect)).Msg("migrations applied")
	}
	return nil
}

// initCache: Redis lỗi kết nối không critical, fallback sang in-memory cache
func (c *Container) initCache(ctx context.Context) {
	if c.Config.Redis.Enabled {
		rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
			_ = rc.Close()
		} else {
			c.Cache = rc
			return
		}
	}
	c.Cache = cache.NewMemoryCache()
}

func (c *Container) initRepositories() {
	var store bookRepo.Store
	if c.SQLDB == nil {
		store = bookRepo.NewMemoryStore()
		c.UserRepo = userRepo.NewMemoryRepository()
	} else {
		store = bookRepo.NewSQLStore(c.SQLDB, c.Dialect)
		c.UserRepo = userRepo.NewSQLRepository(c.SQLDB, c.Dialect)
	}

	// GET /api/books/:id đi qua cache-aside
	c.BookStore = bookRepo.NewCachedStore(store, c.Cache, c.Config.Redis.BookTTL)
}

func (c *Container) initServices() error {
	verifier, err := userService.NewCredentialVerifier(c.Config.Auth.PasswordScheme)
	if err != nil {
		return err
	}

	c.BookService = bookService.NewBookService(c.BookStore, c.Config.Features.FaultInjection)
	c.BulkImportService = bookService.NewBulkImportService(bookService.NewCreatePipeline(c.BookStore))
	c.UserService = userService.NewUserService(c.UserRepo, verifier, c.JWTManager, c.Cache)
	return nil
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.BulkImportHandler = bookHandler.NewBulkImportHandler(c.BulkImportService)
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService, userHandler.CookieConfig{
		Name:   c.Config.Session.CookieName,
		MaxAge: c.Config.Session.TTL,
		Secure: c.Config.Session.Secure,
	})
	c.PageHandler = web.NewPageHandler(c.BookService)
}

// Cleanup dọn dẹp resources khi shutdown. Safe to call multiple times.
func (c *Container) Cleanup() {
	log.Info().Msg("container cleaning up")

	if c.DB != nil {
		// PostgresDB.Close đóng cả sql handle
		if err := c.DB.Close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
		c.DB = nil
		c.SQLDB = nil
	}
	if c.SQLDB != nil {
		if err := c.SQLDB.Close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
		c.SQLDB = nil
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}
}
