package swipes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/enums"
	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrDuplicate means the actor already swiped this target. The ledger
	// keeps the original decision; nothing is written.
	ErrDuplicate = errors.New("duplicate swipe")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too many swipes, retry after " + strconv.FormatInt(e.RetryAfterSec, 10) + "s"
}

func IsTooFast(err error) (TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return tf, true
	}
	return TooFastError{}, false
}

type SwipeStore interface {
	Create(ctx context.Context, tx pgx.Tx, actorUserID, targetUserID int64, liked bool, now time.Time) (model.Swipe, error)
}

type MatchStore interface {
	CreateIfMutualLike(ctx context.Context, tx pgx.Tx, userID, targetID int64) (*model.Match, error)
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type RateLimiter interface {
	Allow(ctx context.Context, userID int64) (int64, bool, error)
}

// Outcome reports whether the swipe completed a mutual like. MatchedUserID
// is set only when MatchCreated is true; it feeds the confirmation screen,
// nothing else.
type Outcome struct {
	MatchCreated  bool
	MatchedUserID int64
}

type Service struct {
	tx          TxRunner
	swipeStore  SwipeStore
	matchStore  MatchStore
	rateLimiter RateLimiter
	now         func() time.Time
}

type Dependencies struct {
	Tx          TxRunner
	SwipeStore  SwipeStore
	MatchStore  MatchStore
	RateLimiter RateLimiter
}

func NewService(deps Dependencies) *Service {
	return &Service{
		tx:          deps.Tx,
		swipeStore:  deps.SwipeStore,
		matchStore:  deps.MatchStore,
		rateLimiter: deps.RateLimiter,
		now:         time.Now,
	}
}

// Record appends the swipe and, for likes, runs match detection inside the
// same transaction. A self-swipe or a repeat of an already-swiped target is
// rejected before anything is written.
func (s *Service) Record(ctx context.Context, actorUserID, targetUserID int64, action string) (Outcome, error) {
	if actorUserID <= 0 || targetUserID <= 0 {
		return Outcome{}, ErrValidation
	}
	if targetUserID == actorUserID {
		return Outcome{}, ErrValidation
	}

	liked, err := normalizeAction(action)
	if err != nil {
		return Outcome{}, err
	}

	if s.tx == nil || s.swipeStore == nil || s.matchStore == nil {
		return Outcome{}, fmt.Errorf("swipe dependencies are not configured")
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.Allow(ctx, actorUserID)
		if err != nil {
			return Outcome{}, fmt.Errorf("apply swipe rate limiter: %w", err)
		}
		if !allowed {
			return Outcome{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	now := s.now().UTC()

	var match *model.Match
	if err := s.tx.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := s.swipeStore.Create(txCtx, tx, actorUserID, targetUserID, liked, now); err != nil {
			if errors.Is(err, pgrepo.ErrDuplicateSwipe) {
				return ErrDuplicate
			}
			return err
		}

		if !liked {
			return nil
		}

		created, err := s.matchStore.CreateIfMutualLike(txCtx, tx, actorUserID, targetUserID)
		if err != nil {
			return err
		}
		match = created
		return nil
	}); err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{}
	if match != nil {
		outcome.MatchCreated = true
		outcome.MatchedUserID = targetUserID
	}
	return outcome, nil
}

func normalizeAction(input string) (bool, error) {
	switch enums.SwipeAction(strings.ToLower(strings.TrimSpace(input))) {
	case enums.SwipeActionLike:
		return true, nil
	case enums.SwipeActionDislike:
		return false, nil
	default:
		return false, ErrUnsupportedAction
	}
}
