package api

import (
	"context"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
)

// dateFormat is how entity dates appear on the wire.
const dateFormat = "2006-01-02"

// authenticateRequest validates the Authorization header and returns the
// admin holding the token.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*domain.Admin, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("invalid authorization header format")
	}

	admin, err := s.services.Auth.Verify(ctx, parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("invalid or expired token")
	}

	return admin, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

// emptyTags keeps tag lists as [] instead of null in JSON.
func emptyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
