package alumni

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AlumniProfiles manages the directory records alumni accounts maintain
type AlumniProfiles interface {
	repository.Repository[*AlumniProfile]

	GetByUserID(ctx context.Context, userID uuid.UUID) (*AlumniProfile, error)
	GetByProfileID(ctx context.Context, id uuid.UUID) (*AlumniProfile, error)
	CreateForUser(ctx context.Context, profile *AlumniProfile) (*AlumniProfile, error)
	Save(ctx context.Context, profile *AlumniProfile) (*AlumniProfile, error)
	DeleteByProfileID(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]*AlumniProfile, error)
	Count(ctx context.Context) (int, error)
}

type profiles struct {
	repository.Repository[*AlumniProfile]
	db *bun.DB
}

var _ AlumniProfiles = (*profiles)(nil)

func NewAlumniProfilesRepository(db *bun.DB) AlumniProfiles {
	repo := repository.NewRepository[*AlumniProfile](db, repository.ModelHandlers[*AlumniProfile]{
		NewRecord: func() *AlumniProfile { return &AlumniProfile{} },
		GetID: func(p *AlumniProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *AlumniProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &profiles{
		Repository: repo,
		db:         db,
	}
}

func (r *profiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*AlumniProfile, error) {
	record := &AlumniProfile{}
	err := r.db.NewSelect().
		Model(record).
		Where("prf.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query profile by user")
	}
	return record, nil
}

func (r *profiles) GetByProfileID(ctx context.Context, id uuid.UUID) (*AlumniProfile, error) {
	record := &AlumniProfile{}
	err := r.db.NewSelect().
		Model(record).
		Where("prf.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query profile")
	}
	return record, nil
}

// CreateForUser inserts a profile, enforcing one profile per account
func (r *profiles) CreateForUser(ctx context.Context, profile *AlumniProfile) (*AlumniProfile, error) {
	taken, err := r.db.NewSelect().
		Model((*AlumniProfile)(nil)).
		Where("prf.user_id = ?", profile.UserID).
		Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing profile")
	}
	if taken {
		return nil, ErrProfileExists
	}

	record, err := r.CreateTx(ctx, r.db, profile)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrProfileExists
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create profile")
	}

	return record, nil
}

// Save persists in-place edits to an existing profile
func (r *profiles) Save(ctx context.Context, profile *AlumniProfile) (*AlumniProfile, error) {
	now := time.Now().UTC()
	profile.UpdatedAt = &now

	if _, err := r.db.NewUpdate().
		Model(profile).
		WherePK().
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not update profile")
	}

	return profile, nil
}

func (r *profiles) DeleteByProfileID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*AlumniProfile)(nil)).
		Where("prf.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not delete profile")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *profiles) ListAll(ctx context.Context) ([]*AlumniProfile, error) {
	var records []*AlumniProfile
	if err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list profiles")
	}
	return records, nil
}

func (r *profiles) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*AlumniProfile)(nil)).Count(ctx)
}
