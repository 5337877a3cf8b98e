package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/nyeweb/nyeweb-server/internal/api"
	"github.com/nyeweb/nyeweb-server/internal/config"
	"github.com/nyeweb/nyeweb-server/internal/logger"
	"github.com/nyeweb/nyeweb-server/internal/service"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// The bootstrap provider must run before the server accepts logins.
	_ = do.MustInvoke[*AdminBootstrap](i)

	services := &api.Services{
		Article:       do.MustInvoke[*service.ArticleService](i),
		Project:       do.MustInvoke[*service.ProjectService](i),
		Book:          do.MustInvoke[*service.BookService](i),
		Figure:        do.MustInvoke[*service.FigureService](i),
		Tool:          do.MustInvoke[*service.ToolService](i),
		FavoriteImage: do.MustInvoke[*service.FavoriteImageService](i),
		Timeline:      do.MustInvoke[*service.TimelineService](i),
		Auth:          do.MustInvoke[*service.AuthService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		DistRoot:    cfg.Frontend.DistRoot,
		PublicRoot:  cfg.Frontend.PublicRoot,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
