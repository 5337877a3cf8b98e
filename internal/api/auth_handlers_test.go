package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandlers_LoginFlow(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/admin/login", map[string]any{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)

	resp = ts.api.Post("/api/admin/login", map[string]any{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	decodeData(t, resp, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.Username)

	resp = ts.api.Get("/api/admin/verify", "Authorization: Bearer "+login.Token)
	require.Equal(t, http.StatusOK, resp.Code)
	var verify struct {
		Username  string `json:"username"`
		LastLogin string `json:"last_login"`
	}
	decodeData(t, resp, &verify)
	assert.Equal(t, "admin", verify.Username)
	assert.NotEmpty(t, verify.LastLogin)

	resp = ts.api.Post("/api/admin/logout", "Authorization: Bearer "+login.Token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/admin/verify", "Authorization: Bearer "+login.Token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Logout without a token still succeeds.
	resp = ts.api.Post("/api/admin/logout")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthHandlers_VerifyRejectsMalformedHeader(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/admin/verify")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/admin/verify", "Authorization: Basic abc")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHealthHandler(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	decodeData(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["database"].Status)
	assert.Equal(t, "healthy", health.Components["mirror"].Status)
}
