package providers

import (
	"github.com/samber/do/v2"

	"github.com/nyeweb/nyeweb-server/internal/category"
	"github.com/nyeweb/nyeweb-server/internal/config"
	"github.com/nyeweb/nyeweb-server/internal/logger"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: db}, nil
}

// ProvideMirror provides the markdown file mirror for both static roots.
func ProvideMirror(i do.Injector) (*mirror.Mirror, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return mirror.New(cfg.Frontend.DistRoot, cfg.Frontend.PublicRoot), nil
}

// CategoryCacheHandle wraps the category cache with shutdown capability.
type CategoryCacheHandle struct {
	*category.Cache
}

// Shutdown implements do.Shutdownable.
func (h *CategoryCacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideCategoryCache provides the filesystem-backed category cache.
func ProvideCategoryCache(i do.Injector) (*CategoryCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cache, err := category.NewCache(category.NewScanner(cfg.Frontend.DistRoot), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Category cache ready", "root", cfg.Frontend.DistRoot)

	return &CategoryCacheHandle{Cache: cache}, nil
}
