package jwtware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-alumni/middleware/jwtware"
)

type stubClaims struct {
	subject string
	userID  string
	role    string
}

func (s stubClaims) Subject() string          { return s.subject }
func (s stubClaims) UserID() string           { return s.userID }
func (s stubClaims) Role() string             { return s.role }
func (s stubClaims) HasRole(role string) bool { return s.role == role }
func (s stubClaims) Expires() time.Time       { return time.Now().Add(time.Hour) }
func (s stubClaims) IssuedAt() time.Time      { return time.Now() }

type stubValidator struct {
	claims jwtware.AuthClaims
	err    error
}

func (s stubValidator) Validate(string) (jwtware.AuthClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newGuardedApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwtware.New(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestNewRequiresValidator(t *testing.T) {
	assert.Panics(t, func() {
		jwtware.New()
	})
}

func TestGuardAdmission(t *testing.T) {
	claims := stubClaims{subject: "alice@example.com", userID: "u-1", role: "alumni"}

	t.Run("missing header", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{TokenValidator: stubValidator{claims: claims}})

		resp := doRequest(t, app, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("foreign scheme", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{TokenValidator: stubValidator{claims: claims}})

		resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("scheme match is case insensitive", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{TokenValidator: stubValidator{claims: claims}})

		resp := doRequest(t, app, "bearer sometoken")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("validator failure", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{
			TokenValidator: stubValidator{err: errors.New("expired")},
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("valid token admits the request", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{TokenValidator: stubValidator{claims: claims}})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("claims land in locals", func(t *testing.T) {
		app := fiber.New()
		app.Get("/protected", jwtware.New(jwtware.Config{
			TokenValidator: stubValidator{claims: claims},
		}), func(c *fiber.Ctx) error {
			stored, ok := c.Locals("auth_claims").(jwtware.AuthClaims)
			require.True(t, ok)
			return c.SendString(stored.Subject())
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("filter skips the guard", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{
			TokenValidator: stubValidator{err: errors.New("never called")},
			Filter:         func(*fiber.Ctx) bool { return true },
		})

		resp := doRequest(t, app, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestGuardUserResolver(t *testing.T) {
	claims := stubClaims{subject: "alice@example.com", userID: "u-1", role: "alumni"}

	t.Run("resolver failure rejects the request", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{
			TokenValidator: stubValidator{claims: claims},
			UserResolver: func(context.Context, string) (any, error) {
				return nil, errors.New("account vanished")
			},
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("resolved principal lands in locals", func(t *testing.T) {
		type account struct{ Email string }

		app := fiber.New()
		app.Get("/protected", jwtware.New(jwtware.Config{
			TokenValidator: stubValidator{claims: claims},
			UserResolver: func(_ context.Context, subject string) (any, error) {
				return &account{Email: subject}, nil
			},
		}), func(c *fiber.Ctx) error {
			principal, ok := c.Locals("auth_user").(*account)
			require.True(t, ok)
			assert.Equal(t, "alice@example.com", principal.Email)
			return c.SendString("ok")
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestGuardRoleEnforcement(t *testing.T) {
	alumniClaims := stubClaims{subject: "alice@example.com", role: "alumni"}
	adminClaims := stubClaims{subject: "root@example.com", role: "admin"}

	t.Run("missing role is forbidden not unauthorized", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{
			TokenValidator: stubValidator{claims: alumniClaims},
			RequiredRole:   "admin",
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Empty(t, resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("matching role is admitted", func(t *testing.T) {
		app := newGuardedApp(jwtware.Config{
			TokenValidator: stubValidator{claims: adminClaims},
			RequiredRole:   "admin",
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("role checker sees the resolved principal", func(t *testing.T) {
		type account struct{ Role string }

		app := newGuardedApp(jwtware.Config{
			// claims assert admin but the store says otherwise; the store wins
			TokenValidator: stubValidator{claims: adminClaims},
			RequiredRole:   "admin",
			UserResolver: func(context.Context, string) (any, error) {
				return &account{Role: "alumni"}, nil
			},
			RoleChecker: func(principal any, role string) bool {
				acc, ok := principal.(*account)
				return ok && acc.Role == role
			},
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestExtractRawToken(t *testing.T) {
	app := fiber.New()

	var raw string
	var extractErr error
	app.Get("/", func(c *fiber.Ctx) error {
		raw, extractErr = jwtware.ExtractRawToken(c, "Bearer")
		return c.SendString("ok")
	})

	extract := func(t *testing.T, header string) (string, error) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		_, err := app.Test(req)
		require.NoError(t, err)
		return raw, extractErr
	}

	t.Run("well formed header", func(t *testing.T) {
		token, err := extract(t, "Bearer abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("empty credential", func(t *testing.T) {
		_, err := extract(t, "Bearer ")
		assert.ErrorIs(t, err, jwtware.ErrJWTMissingOrMalformed)
	})

	t.Run("no separator", func(t *testing.T) {
		_, err := extract(t, "Bearerabc")
		assert.ErrorIs(t, err, jwtware.ErrJWTMissingOrMalformed)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := extract(t, "")
		assert.ErrorIs(t, err, jwtware.ErrJWTMissingOrMalformed)
	})
}
