package alumni

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ProfileStore is the slice of the profile repository the controller needs
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*AlumniProfile, error)
	CreateForUser(ctx context.Context, profile *AlumniProfile) (*AlumniProfile, error)
	Save(ctx context.Context, profile *AlumniProfile) (*AlumniProfile, error)
}

// ProfileController exposes the alumni profile endpoints. Every route is
// behind the admission middleware; the handlers only see a resolved
// principal.
type ProfileController struct {
	Logger   Logger
	Profiles ProfileStore
}

func NewProfileController(profiles ProfileStore) *ProfileController {
	if profiles == nil {
		panic("Missing AlumniProfiles repository in profile controller...")
	}

	return &ProfileController{
		Logger:   defLogger{},
		Profiles: profiles,
	}
}

func (p *ProfileController) WithLogger(logger Logger) *ProfileController {
	if logger != nil {
		p.Logger = logger
	}
	return p
}

// RegisterProfileRoutes binds the profile endpoints behind the guard
func RegisterProfileRoutes(api fiber.Router, controller *ProfileController, protected fiber.Handler) {
	api.Post("/alumni/profile", protected, controller.Create)
	api.Get("/alumni/profile", protected, controller.Show)
	api.Put("/alumni/profile", protected, controller.Update)
}

// ProfileCreatePayload is the profile creation body
type ProfileCreatePayload struct {
	FullName        string `form:"full_name" json:"full_name"`
	Phone           string `form:"phone" json:"phone"`
	GraduationYear  int    `form:"graduation_year" json:"graduation_year"`
	Degree          string `form:"degree" json:"degree"`
	Department      string `form:"department" json:"department"`
	CurrentPosition string `form:"current_position" json:"current_position"`
	CurrentCompany  string `form:"current_company" json:"current_company"`
	LinkedinURL     string `form:"linkedin_url" json:"linkedin_url"`
	Bio             string `form:"bio" json:"bio"`
}

// Validate will run validation rules
func (r ProfileCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.GraduationYear, validation.Required, validation.Min(1900)),
		validation.Field(&r.Degree, validation.Required),
		validation.Field(&r.Department, validation.Required),
		validation.Field(&r.LinkedinURL, is.URL),
	)
}

func (p *ProfileController) Create(c *fiber.Ctx) error {
	user, ok := PrincipalFromFiber(c, DefaultUserContextKey)
	if !ok {
		return respondError(c, ErrUnauthenticated)
	}

	payload := new(ProfileCreatePayload)
	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("profile create parse payload", "error", err)
		return respondError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(c, err)
	}

	now := time.Now().UTC()
	profile := &AlumniProfile{
		UserID:          user.ID,
		FullName:        payload.FullName,
		Phone:           payload.Phone,
		GraduationYear:  payload.GraduationYear,
		Degree:          payload.Degree,
		Department:      payload.Department,
		CurrentPosition: payload.CurrentPosition,
		CurrentCompany:  payload.CurrentCompany,
		LinkedinURL:     payload.LinkedinURL,
		Bio:             payload.Bio,
		CreatedAt:       &now,
		UpdatedAt:       &now,
	}

	profile, err := p.Profiles.CreateForUser(c.UserContext(), profile)
	if err != nil {
		p.Logger.Error("profile create", "error", err, "user_id", user.ID)
		return respondError(c, err)
	}

	return c.JSON(profile)
}

func (p *ProfileController) Show(c *fiber.Ctx) error {
	user, ok := PrincipalFromFiber(c, DefaultUserContextKey)
	if !ok {
		return respondError(c, ErrUnauthenticated)
	}

	profile, err := p.Profiles.GetByUserID(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// ProfileUpdatePayload carries the editable subset; nil means unchanged
type ProfileUpdatePayload struct {
	FullName        *string `form:"full_name" json:"full_name"`
	Phone           *string `form:"phone" json:"phone"`
	CurrentPosition *string `form:"current_position" json:"current_position"`
	CurrentCompany  *string `form:"current_company" json:"current_company"`
	LinkedinURL     *string `form:"linkedin_url" json:"linkedin_url"`
	Bio             *string `form:"bio" json:"bio"`
}

func (p *ProfileController) Update(c *fiber.Ctx) error {
	user, ok := PrincipalFromFiber(c, DefaultUserContextKey)
	if !ok {
		return respondError(c, ErrUnauthenticated)
	}

	payload := new(ProfileUpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("profile update parse payload", "error", err)
		return respondError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	profile, err := p.Profiles.GetByUserID(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	applyProfilePatch(profile, payload)

	profile, err = p.Profiles.Save(c.UserContext(), profile)
	if err != nil {
		p.Logger.Error("profile update", "error", err, "user_id", user.ID)
		return respondError(c, err)
	}

	return c.JSON(profile)
}

func applyProfilePatch(profile *AlumniProfile, patch *ProfileUpdatePayload) {
	if patch.FullName != nil {
		profile.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.CurrentPosition != nil {
		profile.CurrentPosition = *patch.CurrentPosition
	}
	if patch.CurrentCompany != nil {
		profile.CurrentCompany = *patch.CurrentCompany
	}
	if patch.LinkedinURL != nil {
		profile.LinkedinURL = *patch.LinkedinURL
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
}
