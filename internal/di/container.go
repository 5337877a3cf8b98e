// Package di provides dependency injection configuration for the NyeWeb server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/nyeweb/nyeweb-server/internal/config"
	"github.com/nyeweb/nyeweb-server/internal/di/providers"
	"github.com/nyeweb/nyeweb-server/internal/logger"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/service"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideMirror)
	do.Provide(injector, providers.ProvideCategoryCache)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideArticleService)
	do.Provide(injector, providers.ProvideProjectService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideFigureService)
	do.Provide(injector, providers.ProvideToolService)
	do.Provide(injector, providers.ProvideFavoriteImageService)
	do.Provide(injector, providers.ProvideTimelineService)
	do.Provide(injector, providers.ProvideAdminBootstrap)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*mirror.Mirror](injector)
	_ = do.MustInvoke[*providers.CategoryCacheHandle](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ArticleService](injector)
	_ = do.MustInvoke[*service.ProjectService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.FigureService](injector)
	_ = do.MustInvoke[*service.ToolService](injector)
	_ = do.MustInvoke[*service.FavoriteImageService](injector)
	_ = do.MustInvoke[*service.TimelineService](injector)
	_ = do.MustInvoke[*providers.AdminBootstrap](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
