package alumni

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// EventStore is the slice of the event repository the controller needs
type EventStore interface {
	Add(ctx context.Context, event *Event) (*Event, error)
	GetByEventID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
}

// EventController exposes the event endpoints: listing and reading for
// any authenticated member, creation for admins only.
type EventController struct {
	Logger Logger
	Events EventStore
}

func NewEventController(events EventStore) *EventController {
	if events == nil {
		panic("Missing Events repository in event controller...")
	}

	return &EventController{
		Logger: defLogger{},
		Events: events,
	}
}

func (e *EventController) WithLogger(logger Logger) *EventController {
	if logger != nil {
		e.Logger = logger
	}
	return e
}

// RegisterEventRoutes binds the event endpoints. Creation sits behind the
// admin guard, reads behind the plain one.
func RegisterEventRoutes(api fiber.Router, controller *EventController, protected, adminOnly fiber.Handler) {
	api.Post("/events", adminOnly, controller.Create)
	api.Get("/events", protected, controller.List)
	api.Get("/events/:id", protected, controller.Show)
}

// EventCreatePayload is the event creation body
type EventCreatePayload struct {
	Title       string    `form:"title" json:"title"`
	Description string    `form:"description" json:"description"`
	Date        time.Time `form:"date" json:"date"`
	Location    string    `form:"location" json:"location"`
}

// Validate will run validation rules
func (r EventCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Location, validation.Required),
	)
}

func (e *EventController) Create(c *fiber.Ctx) error {
	admin, ok := PrincipalFromFiber(c, DefaultUserContextKey)
	if !ok {
		return respondError(c, ErrUnauthenticated)
	}

	payload := new(EventCreatePayload)
	if err := c.BodyParser(payload); err != nil {
		e.Logger.Error("event create parse payload", "error", err)
		return respondError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(c, err)
	}

	now := time.Now().UTC()
	event := &Event{
		Title:       payload.Title,
		Description: payload.Description,
		Date:        payload.Date,
		Location:    payload.Location,
		CreatedBy:   admin.ID,
		CreatedAt:   &now,
	}

	event, err := e.Events.Add(c.UserContext(), event)
	if err != nil {
		e.Logger.Error("event create", "error", err, "created_by", admin.ID)
		return respondError(c, err)
	}

	return c.JSON(event)
}

func (e *EventController) List(c *fiber.Ctx) error {
	records, err := e.Events.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(records)
}

func (e *EventController) Show(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, ErrEventNotFound)
	}

	event, err := e.Events.GetByEventID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(event)
}
