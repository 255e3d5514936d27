package alumni

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// TokenResponse is the payload returned by register and login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// AuthController exposes the authentication endpoints
type AuthController struct {
	Logger Logger
	Auther Authenticator
}

func NewAuthController(auther Authenticator) *AuthController {
	if auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return &AuthController{
		Logger: defLogger{},
		Auther: auther,
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterAuthRoutes binds the auth endpoints. The protected handler is
// the admission middleware guarding /auth/me.
func RegisterAuthRoutes(api fiber.Router, controller *AuthController, protected fiber.Handler) {
	api.Post("/auth/register", controller.Register)
	api.Post("/auth/login", controller.Login)
	api.Get("/auth/me", protected, controller.Me)
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string   `form:"email" json:"email"`
	Password string   `form:"password" json:"password"`
	Role     UserRole `form:"role" json:"role"`
}

// Validate will run validation rules. Password strength is not enforced;
// policy belongs to callers.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		if errors.Is(err, ErrInvalidRole) {
			return respondError(c, ErrInvalidRole)
		}
		return respondError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload", "error", err)
		return respondValidationError(c, err)
	}

	token, user, err := a.Auther.Register(c.UserContext(), payload.Email, payload.Password, payload.Role)
	if err != nil {
		a.Logger.Error("register user", "error", err, "email", payload.Email)
		return respondError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return respondError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(c, err)
	}

	token, user, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("login user", "error", err, "email", payload.Email)
		return respondError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Me returns the account behind the presented token
func (a *AuthController) Me(c *fiber.Ctx) error {
	user, ok := PrincipalFromFiber(c, DefaultUserContextKey)
	if !ok {
		return respondError(c, ErrUnauthenticated)
	}

	return c.JSON(user)
}

// respondError maps rich errors onto the fixed HTTP statuses of the API
func respondError(c *fiber.Ctx, err error) error {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error",
		})
	}

	status := httpStatus(rich)
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}

	return c.Status(status).JSON(fiber.Map{
		"detail": rich.Message,
	})
}

func httpStatus(err *errors.Error) int {
	switch err.Code {
	case errors.CodeBadRequest:
		return fiber.StatusBadRequest
	case errors.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case errors.CodeForbidden:
		return fiber.StatusForbidden
	case errors.CodeNotFound:
		return fiber.StatusNotFound
	case errors.CodeConflict:
		return fiber.StatusConflict
	}

	switch err.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryBadInput, errors.CategoryValidation, errors.CategoryConflict:
		return fiber.StatusBadRequest
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondValidationError renders ozzo validation failures as a field map
func respondValidationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": "Invalid request payload",
		"errors": FormatValidationErrorToMap(err),
	})
}

// FormatValidationErrorToMap flattens ozzo validation errors per field
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}
