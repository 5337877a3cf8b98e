package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminLogin",
		Method:      http.MethodPost,
		Path:        "/api/admin/login",
		Summary:     "Admin login",
		Description: "Checks credentials and issues a fresh bearer token, invalidating any previous one.",
		Tags:        []string{"Auth"},
	}, s.handleAdminLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminLogout",
		Method:      http.MethodPost,
		Path:        "/api/admin/logout",
		Summary:     "Admin logout",
		Description: "Revokes the presented token. Always succeeds, even for unknown tokens.",
		Tags:        []string{"Auth"},
	}, s.handleAdminLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminVerify",
		Method:      http.MethodGet,
		Path:        "/api/admin/verify",
		Summary:     "Verify admin token",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminVerify)
}

// === DTOs ===

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" maxLength:"100" doc:"Admin username"`
	Password string `json:"password" maxLength:"1024" doc:"Admin password"`
}

// LoginInput wraps the login request for huma.
type LoginInput struct {
	Body LoginRequest
}

// LoginOutput carries the issued token.
type LoginOutput struct {
	Body struct {
		Token    string `json:"token" doc:"Bearer token for admin requests"`
		Username string `json:"username" doc:"Authenticated admin username"`
	}
}

// LogoutInput carries the token to revoke.
type LogoutInput struct {
	Authorization string `header:"Authorization"`
}

// VerifyInput carries the token to check.
type VerifyInput struct {
	Authorization string `header:"Authorization"`
}

// VerifyOutput reports the admin behind a valid token.
type VerifyOutput struct {
	Body struct {
		Username  string `json:"username" doc:"Admin username"`
		LastLogin string `json:"last_login,omitempty" doc:"Last login time (RFC 3339)"`
	}
}

// === Handlers ===

func (s *Server) handleAdminLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	token, err := s.services.Auth.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, err
	}

	out := &LoginOutput{}
	out.Body.Token = token
	out.Body.Username = input.Body.Username
	return out, nil
}

func (s *Server) handleAdminLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	token := bearerToken(input.Authorization)
	if token != "" {
		if err := s.services.Auth.Logout(ctx, token); err != nil {
			return nil, err
		}
	}
	return toMessageOutput("logged out"), nil
}

func (s *Server) handleAdminVerify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error) {
	admin, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	out := &VerifyOutput{}
	out.Body.Username = admin.Username
	if admin.LastLogin != nil {
		out.Body.LastLogin = admin.LastLogin.UTC().Format(time.RFC3339)
	}
	return out, nil
}

// bearerToken extracts the token from an Authorization header, returning
// "" when the header is absent or malformed.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
