package alumni

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goliatone/go-alumni/middleware/jwtware"
)

// Server assembles the HTTP surface: public auth routes, guarded member
// routes and admin-only routes.
type Server struct {
	app    *fiber.App
	cfg    *AppConfig
	repo   RepositoryManager
	auther *Auther
	logger Logger
}

func NewServer(cfg *AppConfig, repo RepositoryManager, logger Logger) *Server {
	if logger == nil {
		logger = defLogger{}
	}

	repo.MustValidate()

	auther := NewAuthenticator(repo.Users(), cfg).WithLogger(logger)

	app := fiber.New(fiber.Config{
		AppName:               "go-alumni",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	s := &Server{
		app:    app,
		cfg:    cfg,
		repo:   repo,
		auther: auther,
		logger: logger,
	}

	s.registerRoutes()

	return s
}

// Auther exposes the authenticator, mostly for wiring and tests
func (s *Server) Auther() *Auther {
	return s.auther
}

// App exposes the underlying fiber app for in-process testing
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	s.logger.Info("HTTP server listening", "addr", s.cfg.Address)
	return s.app.Listen(s.cfg.Address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	protected := s.ProtectedRoute("")
	adminOnly := s.ProtectedRoute(string(RoleAdmin))

	authCtrl := NewAuthController(s.auther).WithLogger(s.logger)
	profileCtrl := NewProfileController(s.repo.Profiles()).WithLogger(s.logger)
	eventCtrl := NewEventController(s.repo.Events()).WithLogger(s.logger)
	adminCtrl := NewAdminController(s.repo.Users(), s.repo.Profiles(), s.repo.Events()).WithLogger(s.logger)

	RegisterAuthRoutes(api, authCtrl, protected)
	RegisterProfileRoutes(api, profileCtrl, protected)
	RegisterEventRoutes(api, eventCtrl, protected, adminOnly)
	RegisterAdminRoutes(api, adminCtrl, adminOnly)
}

// ProtectedRoute builds the admission middleware. With a requiredRole the
// gate additionally enforces role membership on the resolved principal.
func (s *Server) ProtectedRoute(requiredRole string) fiber.Handler {
	provider := NewUserProvider(s.repo.Users()).WithLogger(s.logger)

	return jwtware.New(jwtware.Config{
		TokenValidator:   tokenValidatorAdapter{ts: s.auther.TokenService()},
		ClaimsContextKey: DefaultClaimsContextKey,
		UserContextKey:   DefaultUserContextKey,
		AuthScheme:       s.cfg.GetAuthScheme(),
		RequiredRole:     requiredRole,
		UserResolver: func(ctx context.Context, subject string) (any, error) {
			return provider.FindIdentityByIdentifier(ctx, subject)
		},
		RoleChecker: func(principal any, role string) bool {
			user, ok := principal.(*User)
			return ok && string(user.Role) == role
		},
		ErrorHandler: guardErrorHandler,
	})
}

// guardErrorHandler normalizes every admission failure: a role rejection
// is Forbidden, everything else collapses to Unauthenticated so a decode
// error never leaks internals.
func guardErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrInsufficientRole) {
		return respondError(c, ErrForbidden)
	}
	return respondError(c, ErrUnauthenticated)
}

// tokenValidatorAdapter bridges the TokenService into the middleware
// without an import cycle.
type tokenValidatorAdapter struct {
	ts TokenService
}

func (a tokenValidatorAdapter) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := a.ts.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
