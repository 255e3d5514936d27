package alumni

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Events manages directory events
type Events interface {
	repository.Repository[*Event]

	Add(ctx context.Context, event *Event) (*Event, error)
	GetByEventID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Count(ctx context.Context) (int, error)
}

type events struct {
	repository.Repository[*Event]
	db *bun.DB
}

var _ Events = (*events)(nil)

func NewEventsRepository(db *bun.DB) Events {
	repo := repository.NewRepository[*Event](db, repository.ModelHandlers[*Event]{
		NewRecord: func() *Event { return &Event{} },
		GetID: func(e *Event) uuid.UUID {
			if e == nil {
				return uuid.Nil
			}
			return e.ID
		},
		SetID: func(e *Event, id uuid.UUID) {
			if e != nil {
				e.ID = id
			}
		},
	})

	return &events{
		Repository: repo,
		db:         db,
	}
}

func (r *events) Add(ctx context.Context, event *Event) (*Event, error) {
	record, err := r.CreateTx(ctx, r.db, event)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create event")
	}
	return record, nil
}

func (r *events) GetByEventID(ctx context.Context, id uuid.UUID) (*Event, error) {
	record := &Event{}
	err := r.db.NewSelect().
		Model(record).
		Where("evt.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query event")
	}
	return record, nil
}

func (r *events) ListAll(ctx context.Context) ([]*Event, error) {
	var records []*Event
	if err := r.db.NewSelect().
		Model(&records).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list events")
	}
	return records, nil
}

func (r *events) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Event)(nil)).Count(ctx)
}
