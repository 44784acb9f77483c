package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, tx pgx.Tx, profile model.Profile) error {
	if profile.UserID <= 0 {
		return fmt.Errorf("invalid profile payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO profiles (
	user_id,
	display_name,
	birthdate,
	city,
	vibe_tags,
	icebreakers,
	photo_key,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`,
		profile.UserID,
		strings.TrimSpace(profile.DisplayName),
		profile.Birthdate,
		strings.TrimSpace(profile.City),
		strings.TrimSpace(profile.VibeTags),
		profile.Icebreakers,
		strings.TrimSpace(profile.PhotoKey),
	); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id")
	}

	var profile model.Profile
	err := r.pool.QueryRow(ctx, `
SELECT
	user_id,
	COALESCE(display_name, ''),
	birthdate,
	COALESCE(DATE_PART('year', AGE(NOW(), birthdate::timestamp))::int, 0),
	COALESCE(city, ''),
	COALESCE(vibe_tags, ''),
	icebreakers,
	COALESCE(photo_key, ''),
	created_at,
	updated_at
FROM profiles
WHERE user_id = $1
`, userID).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Birthdate,
		&profile.Age,
		&profile.City,
		&profile.VibeTags,
		&profile.Icebreakers,
		&profile.PhotoKey,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile by user id: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepo) Update(ctx context.Context, profile model.Profile) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if profile.UserID <= 0 {
		return fmt.Errorf("invalid profile payload")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE profiles
SET
	display_name = $2,
	birthdate = $3,
	city = $4,
	vibe_tags = $5,
	icebreakers = $6,
	photo_key = $7,
	updated_at = NOW()
WHERE user_id = $1
`,
		profile.UserID,
		strings.TrimSpace(profile.DisplayName),
		profile.Birthdate,
		strings.TrimSpace(profile.City),
		strings.TrimSpace(profile.VibeTags),
		profile.Icebreakers,
		strings.TrimSpace(profile.PhotoKey),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}
