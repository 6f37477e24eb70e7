// Package server assembles and runs the application: it connects the
// database and Redis, applies migrations, selects the payload storage
// backend, and wires the services together.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/Muliro1/alx-files-manager/internal/logging"
	"github.com/Muliro1/alx-files-manager/internal/server/auth"
	"github.com/Muliro1/alx-files-manager/internal/server/config"
	"github.com/Muliro1/alx-files-manager/internal/server/queue"
	"github.com/Muliro1/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/Muliro1/alx-files-manager/internal/server/services"
	"github.com/Muliro1/alx-files-manager/internal/server/sessions"
	"github.com/Muliro1/alx-files-manager/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db    *sql.DB
	redis *redis.Client

	UserService   *services.UserService
	EntryService  *services.EntryService
	StatusService *services.StatusService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	store := sessions.NewRedisStore(rdb)
	gate := services.NewGate(store)

	thumbs := queue.NewRedisQueue(rdb, cfg.ThumbnailQueue)
	welcome := queue.NewRedisQueue(rdb, cfg.UserQueue)

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		db.Close()
		rdb.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	app := &App{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  rdb,
		UserService: services.NewUserService(db, rm, store, gate,
			auth.NewArgon2Hasher(), welcome, logger, cfg),
		EntryService:  services.NewEntryService(db, rm, gate, blobs, thumbs, logger),
		StatusService: services.NewStatusService(db, rm, store),
	}
	return app, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendS3:
		return storage.NewS3Store(ctx, storage.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	case config.StorageBackendDisk:
		return storage.NewDiskStore(cfg.FolderPath), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
}

// Run blocks until the context is cancelled or a termination signal
// arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "starting app",
		"storage_backend", app.config.StorageBackend,
		"redis_addr", app.config.RedisAddr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
}

func (app *App) Close() error {
	var firstErr error
	if err := app.redis.Close(); err != nil {
		firstErr = err
	}
	if err := app.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
