package alumni_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	alumni "github.com/goliatone/go-alumni"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	user := &alumni.User{ID: uuid.New(), Email: "alice@example.com"}

	ctx := alumni.WithContext(context.Background(), user)

	found, ok := alumni.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user.Email, found.Email)

	_, ok = alumni.FromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContext(t *testing.T) {
	claims := &alumni.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserRole: "alumni",
	}

	ctx := alumni.WithClaimsContext(context.Background(), claims)

	found, ok := alumni.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", found.Subject())
	assert.True(t, found.HasRole("alumni"))

	_, ok = alumni.GetClaims(context.Background())
	assert.False(t, ok)
}
