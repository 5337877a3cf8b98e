package api

import (
	"github.com/nyeweb/nyeweb-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Article        *service.ArticleService
	Project        *service.ProjectService
	Book           *service.BookService
	Figure         *service.FigureService
	Tool           *service.ToolService
	FavoriteImage  *service.FavoriteImageService
	Timeline       *service.TimelineService
	Auth           *service.AuthService
}
