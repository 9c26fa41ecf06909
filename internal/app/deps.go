package app

import (
	"context"
	"fmt"

	"github.com/storyshare/core/internal/config"
	"github.com/storyshare/core/internal/database"
	"github.com/storyshare/core/internal/pkg/clock"
	"github.com/storyshare/core/internal/pkg/hasher"
	pkgredis "github.com/storyshare/core/internal/pkg/redis"
	"github.com/storyshare/core/internal/pkg/revocation"
	"github.com/storyshare/core/internal/pkg/storage"
	"github.com/storyshare/core/internal/repositories/bookmarks"
	"github.com/storyshare/core/internal/repositories/categories"
	"github.com/storyshare/core/internal/repositories/stories"
	"github.com/storyshare/core/internal/repositories/users"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Users      users.Repository
	Categories categories.Repository
	Stories    stories.Repository
	Bookmarks  bookmarks.Repository
	Ledger     revocation.Ledger
	Store      storage.Store
	Hasher     hasher.Hasher
	Clock      clock.Clock
	// Redis is optional; rate limiting is skipped without it.
	Redis *pkgredis.Client
	// LocalDir is served under /storage when the store is local.
	LocalDir string
}

// MemoryRepositories fills the repositories with in-process implementations
// and seeds the default categories.
func MemoryRepositories(ctx context.Context, d *Deps) error {
	d.Users = users.NewMemoryRepository()
	cats := categories.NewMemoryRepository()
	if err := database.Seed(ctx, cats); err != nil {
		return err
	}
	d.Categories = cats
	bm := bookmarks.NewMemoryRepository()
	d.Bookmarks = bm
	d.Stories = stories.NewMemoryRepository(d.Users, cats, bm)
	return nil
}

func gormRepositories(db *gorm.DB, d *Deps) {
	d.Users = users.NewGormRepository(db)
	d.Categories = categories.NewGormRepository(db)
	d.Stories = stories.NewGormRepository(db)
	d.Bookmarks = bookmarks.NewGormRepository(db)
}

// resources owns what openDeps opened so it can be released on shutdown.
type resources struct {
	db     *gorm.DB
	redis  *pkgredis.Client
	cancel context.CancelFunc
}

func (r *resources) close(logger *zap.Logger) {
	if r.cancel != nil {
		r.cancel()
	}
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}
	if r.db != nil {
		if err := database.Close(r.db); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
}

// openDeps connects the configured backends: DB → Redis → ledger → store.
func openDeps(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (Deps, *resources, error) {
	res := &resources{}
	d := Deps{Hasher: hasher.NewBcrypt(0), Clock: clock.Real()}
	fail := func(err error) (Deps, *resources, error) {
		res.close(logger)
		return Deps{}, nil, err
	}

	switch cfg.Database.Driver {
	case config.DatabaseMemory:
		logger.Warn("using in-memory repositories; data is lost on restart")
		if err := MemoryRepositories(ctx, &d); err != nil {
			return fail(fmt.Errorf("seed: %w", err))
		}
	default:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return fail(fmt.Errorf("database: %w", err))
		}
		res.db = db
		gormRepositories(db, &d)
	}

	if !cfg.Redis.Disable {
		rc, err := pkgredis.Connect(ctx, cfg.Redis.URLValue())
		if err != nil {
			return fail(fmt.Errorf("redis: %w", err))
		}
		res.redis = rc
		d.Redis = rc
	}

	switch cfg.Ledger.Driver {
	case config.LedgerMemory:
		ml := revocation.NewMemoryLedger(d.Clock)
		sweepCtx, cancel := context.WithCancel(context.Background())
		res.cancel = cancel
		go ml.Run(sweepCtx, cfg.Ledger.SweepInterval)
		d.Ledger = ml
	default:
		d.Ledger = revocation.NewRedisLedger(d.Redis)
	}

	switch cfg.Storage.Driver {
	case config.StorageS3:
		s3, err := storage.NewS3Store(ctx, cfg.Storage.S3)
		if err != nil {
			return fail(fmt.Errorf("storage: %w", err))
		}
		d.Store = s3
	default:
		local, err := storage.NewLocalStore(cfg.StorageDir(), cfg.Storage.PublicURL)
		if err != nil {
			return fail(fmt.Errorf("storage: %w", err))
		}
		d.Store = local
		d.LocalDir = local.Root()
	}
	return d, res, nil
}
