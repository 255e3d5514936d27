package alumni

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProfileDirectory is the slice of the profile repository admins manage
type ProfileDirectory interface {
	ListAll(ctx context.Context) ([]*AlumniProfile, error)
	GetByProfileID(ctx context.Context, id uuid.UUID) (*AlumniProfile, error)
	DeleteByProfileID(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// Counter counts records for the dashboard stats
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// AdminController exposes the admin-only directory management endpoints.
// The role check happens in the admission middleware; by the time a
// handler runs the principal is known to be an admin.
type AdminController struct {
	Logger   Logger
	Users    Counter
	Profiles ProfileDirectory
	Events   Counter
}

func NewAdminController(users Counter, profiles ProfileDirectory, events Counter) *AdminController {
	if users == nil || profiles == nil || events == nil {
		panic("Missing repositories in admin controller...")
	}

	return &AdminController{
		Logger:   defLogger{},
		Users:    users,
		Profiles: profiles,
		Events:   events,
	}
}

func (a *AdminController) WithLogger(logger Logger) *AdminController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterAdminRoutes binds the admin endpoints behind the admin guard
func RegisterAdminRoutes(api fiber.Router, controller *AdminController, adminOnly fiber.Handler) {
	api.Get("/admin/alumni", adminOnly, controller.ListAlumni)
	api.Get("/admin/alumni/:id", adminOnly, controller.ShowAlumni)
	api.Delete("/admin/alumni/:id", adminOnly, controller.DeleteAlumni)
	api.Get("/admin/stats", adminOnly, controller.Stats)
}

func (a *AdminController) ListAlumni(c *fiber.Ctx) error {
	records, err := a.Profiles.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(records)
}

func (a *AdminController) ShowAlumni(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, ErrProfileNotFound)
	}

	profile, err := a.Profiles.GetByProfileID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

func (a *AdminController) DeleteAlumni(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, ErrProfileNotFound)
	}

	if err := a.Profiles.DeleteByProfileID(c.UserContext(), id); err != nil {
		a.Logger.Error("admin delete alumni", "error", err, "profile_id", id)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Alumni deleted successfully",
	})
}

// DirectoryStats is the dashboard aggregate
type DirectoryStats struct {
	TotalAlumni int `json:"total_alumni"`
	TotalEvents int `json:"total_events"`
	TotalUsers  int `json:"total_users"`
}

func (a *AdminController) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	alumniCount, err := a.Profiles.Count(ctx)
	if err != nil {
		return respondError(c, err)
	}

	eventCount, err := a.Events.Count(ctx)
	if err != nil {
		return respondError(c, err)
	}

	userCount, err := a.Users.Count(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(DirectoryStats{
		TotalAlumni: alumniCount,
		TotalEvents: eventCount,
		TotalUsers:  userCount,
	})
}
