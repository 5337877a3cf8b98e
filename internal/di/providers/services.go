package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/nyeweb/nyeweb-server/internal/config"
	"github.com/nyeweb/nyeweb-server/internal/logger"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/service"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

// ProvideAuthService provides the admin authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewAuthService(storeHandle.Store, log.Logger), nil
}

// ProvideArticleService provides the article service.
func ProvideArticleService(i do.Injector) (*service.ArticleService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*mirror.Mirror](i)
	cacheHandle := do.MustInvoke[*CategoryCacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewArticleService(storeHandle.Store, m, cacheHandle.Cache, log.Logger), nil
}

// ProvideProjectService provides the project service.
func ProvideProjectService(i do.Injector) (*service.ProjectService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*mirror.Mirror](i)
	cacheHandle := do.MustInvoke[*CategoryCacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewProjectService(storeHandle.Store, m, cacheHandle.Cache, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideFigureService provides the figure service.
func ProvideFigureService(i do.Injector) (*service.FigureService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewFigureService(storeHandle.Store, log.Logger), nil
}

// ProvideToolService provides the tool service.
func ProvideToolService(i do.Injector) (*service.ToolService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewToolService(storeHandle.Store, validate, log.Logger), nil
}

// ProvideFavoriteImageService provides the favorite image service.
func ProvideFavoriteImageService(i do.Injector) (*service.FavoriteImageService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewFavoriteImageService(storeHandle.Store, log.Logger), nil
}

// ProvideTimelineService provides the timeline service.
func ProvideTimelineService(i do.Injector) (*service.TimelineService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewTimelineService(storeHandle.Store, log.Logger), nil
}

// AdminBootstrap marks that the initial admin account has been ensured.
type AdminBootstrap struct {
	Username string
}

// ProvideAdminBootstrap ensures the admin account exists on startup.
// An existing account is left untouched.
func ProvideAdminBootstrap(i do.Injector) (*AdminBootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authService := do.MustInvoke[*service.AuthService](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := authService.Bootstrap(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return nil, err
	}

	log.Info("Admin account ready", "username", cfg.Admin.Username)

	return &AdminBootstrap{Username: cfg.Admin.Username}, nil
}
