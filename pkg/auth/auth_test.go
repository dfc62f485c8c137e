package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/fabiopiovam/dj-la-library-system/pkg/auth"
)

func TestToken_Roundtrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := auth.NewToken(secret, auth.Profile{Username: "librarian", IsStaff: true}, time.Hour)
	require.NoError(t, err)

	var claims auth.Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "librarian", claims.Subject)
	require.Equal(t, "librarian", claims.Profile.Username)
	require.True(t, claims.Profile.IsStaff)
}

func TestToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := auth.NewToken([]byte("right"), auth.Profile{Username: "reader"}, time.Hour)
	require.NoError(t, err)

	var claims auth.Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	require.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	require.False(t, auth.CheckPassword(hash, "wrong-pass"))
}

func TestAuthContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.Empty(t, auth.Username(ctx))
	require.False(t, auth.IsStaff(ctx))

	ctx = auth.SetAuthContext(ctx, "librarian", true)
	require.Equal(t, "librarian", auth.Username(ctx))
	require.True(t, auth.IsStaff(ctx))
}
