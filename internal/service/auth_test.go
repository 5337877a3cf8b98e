package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
)

func TestAuthService_LoginFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Bootstrap(ctx, "admin", "s3cret"))
	// Bootstrap is idempotent across restarts.
	require.NoError(t, env.auth.Bootstrap(ctx, "admin", "s3cret"))

	token, err := env.auth.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	admin, err := env.auth.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.NotNil(t, admin.LastLogin)

	require.NoError(t, env.auth.Logout(ctx, token))
	_, err = env.auth.Verify(ctx, token)
	assertErrorCode(t, err, domainerrors.CodeUnauthorized)

	// Logout is idempotent.
	require.NoError(t, env.auth.Logout(ctx, token))
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Bootstrap(ctx, "admin", "s3cret"))

	_, err := env.auth.Login(ctx, "admin", "wrong")
	assertErrorCode(t, err, domainerrors.CodeUnauthorized)

	_, err = env.auth.Login(ctx, "nobody", "s3cret")
	assertErrorCode(t, err, domainerrors.CodeUnauthorized)
}

func TestAuthService_LoginRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Bootstrap(ctx, "admin", "s3cret"))

	first, err := env.auth.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	second, err := env.auth.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = env.auth.Verify(ctx, first)
	assertErrorCode(t, err, domainerrors.CodeUnauthorized)
	_, err = env.auth.Verify(ctx, second)
	require.NoError(t, err)
}

func TestAuthService_LoginRateLimited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Bootstrap(ctx, "admin", "s3cret"))

	// Burn through the per-username burst with bad passwords.
	for i := 0; i < 5; i++ {
		_, err := env.auth.Login(ctx, "admin", "wrong")
		assertErrorCode(t, err, domainerrors.CodeUnauthorized)
	}

	_, err := env.auth.Login(ctx, "admin", "s3cret")
	assertErrorCode(t, err, domainerrors.CodeRateLimited)

	// Other usernames are unaffected.
	_, err = env.auth.Login(ctx, "nobody", "s3cret")
	assertErrorCode(t, err, domainerrors.CodeUnauthorized)
}

func TestAuthService_VerifyEmptyToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Verify(context.Background(), "")
	assertErrorCode(t, err, domainerrors.CodeUnauthorized)
}
