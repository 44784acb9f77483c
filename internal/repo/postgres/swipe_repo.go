package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
)

var ErrDuplicateSwipe = errors.New("swipe already recorded")

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

// Create appends a swipe. The ledger keeps at most one row per ordered
// (actor, target) pair; a repeat insert hits the unique constraint and is
// reported as ErrDuplicateSwipe without writing anything.
func (r *SwipeRepo) Create(ctx context.Context, tx pgx.Tx, actorUserID, targetUserID int64, liked bool, now time.Time) (model.Swipe, error) {
	if actorUserID <= 0 || targetUserID <= 0 || actorUserID == targetUserID {
		return model.Swipe{}, fmt.Errorf("invalid swipe payload")
	}
	if tx == nil {
		return model.Swipe{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var swipe model.Swipe
	err := tx.QueryRow(ctx, `
INSERT INTO swipes (
	actor_user_id,
	target_user_id,
	liked,
	created_at
) VALUES ($1, $2, $3, $4)
ON CONFLICT (actor_user_id, target_user_id) DO NOTHING
RETURNING id, actor_user_id, target_user_id, liked, created_at
`, actorUserID, targetUserID, liked, now.UTC()).Scan(
		&swipe.ID,
		&swipe.ActorUserID,
		&swipe.TargetUserID,
		&swipe.Liked,
		&swipe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Swipe{}, ErrDuplicateSwipe
		}
		return model.Swipe{}, fmt.Errorf("create swipe: %w", err)
	}

	return swipe, nil
}

func (r *SwipeRepo) Exists(ctx context.Context, actorUserID, targetUserID int64) (bool, error) {
	if actorUserID <= 0 || targetUserID <= 0 {
		return false, fmt.Errorf("invalid swipe lookup payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE actor_user_id = $1 AND target_user_id = $2
LIMIT 1
`, actorUserID, targetUserID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup swipe: %w", err)
	}

	return true, nil
}
