// Package api provides the HTTP API server and handlers for the NyeWeb backend.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nyeweb/nyeweb-server/internal/store"
)

// Server holds dependencies for HTTP handlers. Typed JSON operations go
// through huma; uploads and static/SPA serving stay on plain chi handlers.
type Server struct {
	store      store.Store
	services   *Services
	router     *chi.Mux
	api        huma.API
	distRoot   string
	publicRoot string
	logger     *slog.Logger
}

// Options configures the HTTP server.
type Options struct {
	DistRoot    string
	PublicRoot  string
	CORSOrigins []string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	humaConfig := huma.DefaultConfig("NyeWeb API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	RegisterErrorHandler()
	api := humachi.New(router, humaConfig)

	s := &Server{
		store:      st,
		services:   services,
		router:     router,
		api:        api,
		distRoot:   opts.DistRoot,
		publicRoot: opts.PublicRoot,
		logger:     logger,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerArticleRoutes()
	s.registerProjectRoutes()
	s.registerBookRoutes()
	s.registerFigureRoutes()
	s.registerToolRoutes()
	s.registerFavoriteImageRoutes()
	s.registerTimelineRoutes()

	// Multipart uploads and the SPA don't fit huma's typed model; they use
	// plain chi handlers with the same response envelope.
	s.setupUploadRoutes()
	s.setupWebRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
