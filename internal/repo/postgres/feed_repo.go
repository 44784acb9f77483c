package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoCandidates = errors.New("no candidates left")

type FeedRepo struct {
	pool *pgxpool.Pool
}

func NewFeedRepo(pool *pgxpool.Pool) *FeedRepo {
	return &FeedRepo{pool: pool}
}

type CandidateRecord struct {
	UserID      int64
	DisplayName string
	Age         int
	City        string
	VibeTags    string
	Icebreakers []string
	PhotoKey    string
	CreatedAt   time.Time
}

// NextCandidate returns the first user by ascending id that the viewer has
// not swiped yet, excluding the viewer. Pure read, no ranking.
func (r *FeedRepo) NextCandidate(ctx context.Context, viewerUserID int64) (CandidateRecord, error) {
	if viewerUserID <= 0 {
		return CandidateRecord{}, fmt.Errorf("invalid viewer id")
	}
	if r.pool == nil {
		return CandidateRecord{}, ErrNoCandidates
	}

	var rec CandidateRecord
	err := r.pool.QueryRow(ctx, `
SELECT
	u.id,
	COALESCE(p.display_name, ''),
	COALESCE(DATE_PART('year', AGE(NOW(), p.birthdate::timestamp))::int, 0),
	COALESCE(p.city, ''),
	COALESCE(p.vibe_tags, ''),
	p.icebreakers,
	COALESCE(p.photo_key, ''),
	u.created_at
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE
	u.id <> $1
	AND NOT EXISTS (
		SELECT 1
		FROM swipes s
		WHERE s.actor_user_id = $1
			AND s.target_user_id = u.id
	)
ORDER BY u.id ASC
LIMIT 1
`, viewerUserID).Scan(
		&rec.UserID,
		&rec.DisplayName,
		&rec.Age,
		&rec.City,
		&rec.VibeTags,
		&rec.Icebreakers,
		&rec.PhotoKey,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CandidateRecord{}, ErrNoCandidates
		}
		return CandidateRecord{}, fmt.Errorf("get next candidate: %w", err)
	}

	return rec, nil
}
