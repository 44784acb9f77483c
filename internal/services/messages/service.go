package messages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
)

const defaultMaxBodyLen = 500

var (
	ErrValidation = errors.New("validation error")

	// ErrNotMatched gates every conversation operation: no match row for
	// the pair means no read and no write.
	ErrNotMatched = errors.New("users are not matched")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too many messages, retry after " + strconv.FormatInt(e.RetryAfterSec, 10) + "s"
}

func IsTooFast(err error) (TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return tf, true
	}
	return TooFastError{}, false
}

type MessageStore interface {
	Create(ctx context.Context, tx pgx.Tx, senderUserID, recipientUserID int64, body string, now time.Time) (model.Message, error)
	ListBetween(ctx context.Context, userID, otherID int64) ([]model.Message, error)
}

type MatchStore interface {
	ExistsForPair(ctx context.Context, tx pgx.Tx, userID, otherID int64) (bool, error)
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type RateLimiter interface {
	Allow(ctx context.Context, userID int64) (int64, bool, error)
}

type Service struct {
	tx           TxRunner
	messageStore MessageStore
	matchStore   MatchStore
	rateLimiter  RateLimiter
	maxBodyLen   int
	now          func() time.Time
}

type Dependencies struct {
	Tx           TxRunner
	MessageStore MessageStore
	MatchStore   MatchStore
	RateLimiter  RateLimiter
}

func NewService(deps Dependencies, maxBodyLen int) *Service {
	if maxBodyLen <= 0 {
		maxBodyLen = defaultMaxBodyLen
	}
	return &Service{
		tx:           deps.Tx,
		messageStore: deps.MessageStore,
		matchStore:   deps.MatchStore,
		rateLimiter:  deps.RateLimiter,
		maxBodyLen:   maxBodyLen,
		now:          time.Now,
	}
}

// Send delivers a message to a matched user. The match check and the insert
// run in one transaction so an unmatch between check and write cannot slip
// a message through.
func (s *Service) Send(ctx context.Context, senderUserID, recipientUserID int64, body string) (model.Message, error) {
	if senderUserID <= 0 || recipientUserID <= 0 || senderUserID == recipientUserID {
		return model.Message{}, ErrValidation
	}

	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > s.maxBodyLen {
		return model.Message{}, ErrValidation
	}

	if s.tx == nil || s.messageStore == nil || s.matchStore == nil {
		return model.Message{}, fmt.Errorf("message dependencies are not configured")
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.Allow(ctx, senderUserID)
		if err != nil {
			return model.Message{}, fmt.Errorf("apply message rate limiter: %w", err)
		}
		if !allowed {
			return model.Message{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	now := s.now().UTC()

	var created model.Message
	if err := s.tx.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		matched, err := s.matchStore.ExistsForPair(txCtx, tx, senderUserID, recipientUserID)
		if err != nil {
			return err
		}
		if !matched {
			return ErrNotMatched
		}

		created, err = s.messageStore.Create(txCtx, tx, senderUserID, recipientUserID, body, now)
		return err
	}); err != nil {
		return model.Message{}, err
	}

	return created, nil
}

// History returns the full conversation with a matched user, oldest first.
func (s *Service) History(ctx context.Context, userID, otherUserID int64) ([]model.Message, error) {
	if err := s.gate(ctx, userID, otherUserID); err != nil {
		return nil, err
	}

	return s.messageStore.ListBetween(ctx, userID, otherUserID)
}

// Open checks that the conversation is reachable without loading it.
func (s *Service) Open(ctx context.Context, userID, otherUserID int64) error {
	return s.gate(ctx, userID, otherUserID)
}

func (s *Service) gate(ctx context.Context, userID, otherUserID int64) error {
	if userID <= 0 || otherUserID <= 0 || userID == otherUserID {
		return ErrValidation
	}
	if s.matchStore == nil || s.messageStore == nil {
		return fmt.Errorf("message dependencies are not configured")
	}

	matched, err := s.matchStore.ExistsForPair(ctx, nil, userID, otherUserID)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotMatched
	}
	return nil
}
