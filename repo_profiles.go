package devconnect

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profiles is the bun backed ProfileStore
type Profiles interface {
	ProfileStore
}

type profiles struct {
	db *bun.DB
}

var _ Profiles = (*profiles)(nil)

func NewProfilesRepository(db *bun.DB) Profiles {
	return &profiles{db: db}
}

func (p *profiles) FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return p.findByUserID(ctx, p.db, userID)
}

func (p *profiles) findByUserID(ctx context.Context, tx bun.IDB, userID uuid.UUID) (*Profile, error) {
	record := &Profile{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, NewStoreError(err, "failed to find profile")
	}

	return record, nil
}

// Upsert inserts the profile or replaces the editable fields of the
// existing one for the same user.
func (p *profiles) Upsert(ctx context.Context, profile *Profile) (*Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.CreatedAt == nil {
		now := time.Now()
		profile.CreatedAt = &now
	}

	var out *Profile
	err := p.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(profile).
			On("CONFLICT (user_id) DO UPDATE").
			Set("company = EXCLUDED.company").
			Set("website = EXCLUDED.website").
			Set("location = EXCLUDED.location").
			Set("status = EXCLUDED.status").
			Set("skills = EXCLUDED.skills").
			Set("bio = EXCLUDED.bio").
			Set("github_username = EXCLUDED.github_username").
			Exec(ctx)
		if err != nil {
			return NewStoreError(err, "failed to upsert profile")
		}

		out, err = p.findByUserID(ctx, tx, profile.UserID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
