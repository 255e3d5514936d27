// Package jwtware is the request admission gate: it extracts the bearer
// token, validates it, resolves the account behind the subject and
// optionally enforces a required role before the handler runs.
//
// The interfaces here mirror the root package ones so the middleware does
// not create an import cycle.
package jwtware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrJWTMissingOrMalformed rejects requests without a usable bearer token
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")
	// ErrInsufficientRole rejects a valid principal lacking the required role
	ErrInsufficientRole = errors.New("insufficient role")
)

// AuthClaims mirrors the structured claims from the root package
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// TokenValidator mirrors TokenService.Validate from the root package
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// SuccessHandler runs after admission; defaults to the next handler
	SuccessHandler fiber.Handler
	// ErrorHandler turns admission failures into responses
	ErrorHandler func(*fiber.Ctx, error) error
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
	// UserResolver loads the account behind a validated subject. Any error
	// rejects the request: a token for a vanished account is treated the
	// same as no token at all.
	UserResolver func(ctx context.Context, subject string) (any, error)
	// RequiredRole, when set, must be present on the resolved principal
	RequiredRole string
	// RoleChecker answers whether the resolved principal holds a role.
	// It only sees the principal the resolver returned, never the store.
	RoleChecker func(principal any, role string) bool

	ClaimsContextKey string
	UserContextKey   string
	AuthScheme       string
}

// New returns a fiber middleware enforcing bearer token admission
func New(config ...Config) fiber.Handler {
	cfg := configDefaults(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ClaimsContextKey, claims)

		var principal any
		if cfg.UserResolver != nil {
			principal, err = cfg.UserResolver(c.UserContext(), claims.Subject())
			if err != nil {
				return cfg.ErrorHandler(c, err)
			}
			c.Locals(cfg.UserContextKey, principal)
		}

		if cfg.RequiredRole != "" {
			allowed := false
			if cfg.RoleChecker != nil {
				allowed = cfg.RoleChecker(principal, cfg.RequiredRole)
			} else {
				allowed = claims.HasRole(cfg.RequiredRole)
			}
			if !allowed {
				return cfg.ErrorHandler(c, ErrInsufficientRole)
			}
		}

		return cfg.SuccessHandler(c)
	}
}

// ExtractRawToken pulls the credential out of the Authorization header.
// No header, a foreign scheme, or an empty credential all fail the same way.
func ExtractRawToken(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrJWTMissingOrMalformed
	}

	if authScheme == "" {
		return header, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
		return "", ErrJWTMissingOrMalformed
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", ErrJWTMissingOrMalformed
	}

	return raw, nil
}

func configDefaults(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("jwtware: TokenValidator is required")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.ClaimsContextKey == "" {
		cfg.ClaimsContextKey = "auth_claims"
	}

	if cfg.UserContextKey == "" {
		cfg.UserContextKey = "auth_user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrInsufficientRole) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"detail": "Not enough permissions",
		})
	}

	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Could not validate credentials",
	})
}
