package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	"github.com/Doudousmyle42/Vibezone/internal/domain/rules"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

type MatchListRecord struct {
	ID          int64
	OtherUserID int64
	DisplayName string
	Age         int
	City        string
	PhotoKey    string
	CreatedAt   time.Time
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// CreateIfMutualLike runs inside the swipe transaction. It looks up the
// reciprocal like and inserts the canonical-pair match row; the unique
// constraint makes concurrent mutual likes collapse into a single match.
// Returns nil when there is no reciprocal like or the match already exists.
func (r *MatchRepo) CreateIfMutualLike(ctx context.Context, tx pgx.Tx, userID, targetID int64) (*model.Match, error) {
	if userID <= 0 || targetID <= 0 || userID == targetID {
		return nil, fmt.Errorf("invalid match payload")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE actor_user_id = $1 AND target_user_id = $2 AND liked
LIMIT 1
`, targetID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup reciprocal like: %w", err)
	}

	userA, userB := rules.CanonicalPair(userID, targetID)

	var match model.Match
	err = tx.QueryRow(ctx, `
INSERT INTO matches (
	user_a_id,
	user_b_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING id, user_a_id, user_b_id, created_at
`, userA, userB).Scan(&match.ID, &match.UserAID, &match.UserBID, &match.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("create match: %w", err)
	}

	return &match, nil
}

func (r *MatchRepo) ExistsForPair(ctx context.Context, tx pgx.Tx, userID, otherID int64) (bool, error) {
	if userID <= 0 || otherID <= 0 || userID == otherID {
		return false, fmt.Errorf("invalid match lookup payload")
	}

	userA, userB := rules.CanonicalPair(userID, otherID)
	query := `
SELECT 1
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
LIMIT 1
`

	var one int
	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, userA, userB).Scan(&one)
	} else {
		if r.pool == nil {
			return false, fmt.Errorf("postgres pool is nil")
		}
		err = r.pool.QueryRow(ctx, query, userA, userB).Scan(&one)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup match: %w", err)
	}

	return true, nil
}

// ListForUser returns the user's matches newest first. The join on profiles
// silently drops matches whose other side no longer resolves.
func (r *MatchRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]MatchListRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchListRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END AS other_user_id,
	COALESCE(p.display_name, ''),
	COALESCE(DATE_PART('year', AGE(NOW(), p.birthdate::timestamp))::int, 0),
	COALESCE(p.city, ''),
	COALESCE(p.photo_key, ''),
	m.created_at
FROM matches m
JOIN profiles p ON p.user_id = CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
WHERE m.user_a_id = $1 OR m.user_b_id = $1
ORDER BY m.created_at DESC, m.id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]MatchListRecord, 0, limit)
	for rows.Next() {
		var item MatchListRecord
		if err := rows.Scan(
			&item.ID,
			&item.OtherUserID,
			&item.DisplayName,
			&item.Age,
			&item.City,
			&item.PhotoKey,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}
