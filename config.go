package alumni

import (
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

const (
	// DefaultUserContextKey is where the guard stores the resolved account
	DefaultUserContextKey = "auth_user"
	// DefaultClaimsContextKey is where the guard stores validated claims
	DefaultClaimsContextKey = "auth_claims"
	// DefaultAuthScheme is the expected Authorization header scheme
	DefaultAuthScheme = "Bearer"
)

// AppConfig is the process wide configuration, loaded once at startup.
// Rotating the signing key invalidates every outstanding token.
type AppConfig struct {
	Address     string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"file:alumni.db?cache=shared&mode=rwc"`
	SigningKey  string        `env:"JWT_SIGNING_KEY"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
	Issuer      string        `env:"JWT_ISSUER" envDefault:"go-alumni"`
	CORSOrigins string        `env:"CORS_ORIGINS" envDefault:"*"`
}

var _ Config = (*AppConfig)(nil)

// LoadConfig reads configuration from the environment. A missing signing
// secret is a fatal startup error, not a per-request condition.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to parse environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "invalid configuration")
	}

	return cfg, nil
}

// Validate will run validation rules
func (c AppConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Address, validation.Required),
		validation.Field(&c.DatabaseDSN, validation.Required),
		validation.Field(&c.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.TokenTTL, validation.Required),
	)
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetTokenTTL() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}

func (c *AppConfig) GetIssuer() string {
	return c.Issuer
}

func (c *AppConfig) GetContextKey() string {
	return DefaultUserContextKey
}

func (c *AppConfig) GetAuthScheme() string {
	return DefaultAuthScheme
}
