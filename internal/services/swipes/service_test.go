package swipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
)

type txRunnerStub struct {
	calls int
	err   error
}

func (s *txRunnerStub) WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(ctx, nil)
}

type swipeStoreStub struct {
	calls      int
	lastActor  int64
	lastTarget int64
	lastLiked  bool
	lastNow    time.Time
	err        error
}

func (s *swipeStoreStub) Create(_ context.Context, _ pgx.Tx, actorUserID, targetUserID int64, liked bool, now time.Time) (model.Swipe, error) {
	s.calls++
	s.lastActor = actorUserID
	s.lastTarget = targetUserID
	s.lastLiked = liked
	s.lastNow = now
	if s.err != nil {
		return model.Swipe{}, s.err
	}
	return model.Swipe{
		ID:           1,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		Liked:        liked,
		CreatedAt:    now,
	}, nil
}

type matchStoreStub struct {
	calls      int
	lastUser   int64
	lastTarget int64
	created    bool
	err        error
}

func (s *matchStoreStub) CreateIfMutualLike(_ context.Context, _ pgx.Tx, userID, targetID int64) (*model.Match, error) {
	s.calls++
	s.lastUser = userID
	s.lastTarget = targetID
	if s.err != nil || !s.created {
		return nil, s.err
	}
	userA, userB := userID, targetID
	if userB < userA {
		userA, userB = userB, userA
	}
	return &model.Match{ID: 1, UserAID: userA, UserBID: userB}, nil
}

type rateLimiterStub struct {
	allowed    bool
	retryAfter int64
}

func (s rateLimiterStub) Allow(context.Context, int64) (int64, bool, error) {
	return s.retryAfter, s.allowed, nil
}

func newTestService(tx *txRunnerStub, swipeStore *swipeStoreStub, matchStore *matchStoreStub) *Service {
	svc := NewService(Dependencies{
		Tx:         tx,
		SwipeStore: swipeStore,
		MatchStore: matchStore,
	})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestRecordRejectsSelfSwipe(t *testing.T) {
	swipeStore := &swipeStoreStub{}
	svc := newTestService(&txRunnerStub{}, swipeStore, &matchStoreStub{})

	_, err := svc.Record(context.Background(), 101, 101, "like")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for self swipe, got %v", err)
	}
	if swipeStore.calls != 0 {
		t.Fatalf("self swipe must not be written, got %d store calls", swipeStore.calls)
	}
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	svc := newTestService(&txRunnerStub{}, &swipeStoreStub{}, &matchStoreStub{})

	_, err := svc.Record(context.Background(), 101, 202, "superlike")
	if !errors.Is(err, ErrUnsupportedAction) {
		t.Fatalf("expected ErrUnsupportedAction, got %v", err)
	}
}

func TestRecordMapsDuplicateSwipe(t *testing.T) {
	swipeStore := &swipeStoreStub{err: pgrepo.ErrDuplicateSwipe}
	matchStore := &matchStoreStub{}
	svc := newTestService(&txRunnerStub{}, swipeStore, matchStore)

	_, err := svc.Record(context.Background(), 101, 202, "like")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if matchStore.calls != 0 {
		t.Fatalf("match detection must not run on duplicate swipe, got %d calls", matchStore.calls)
	}
}

func TestRecordLikeCreatesMatchOnMutualLike(t *testing.T) {
	tx := &txRunnerStub{}
	swipeStore := &swipeStoreStub{}
	matchStore := &matchStoreStub{created: true}
	svc := newTestService(tx, swipeStore, matchStore)

	outcome, err := svc.Record(context.Background(), 101, 202, "like")
	if err != nil {
		t.Fatalf("record like: %v", err)
	}

	if tx.calls != 1 {
		t.Fatalf("expected one transaction, got %d", tx.calls)
	}
	if swipeStore.lastActor != 101 || swipeStore.lastTarget != 202 || !swipeStore.lastLiked {
		t.Fatalf("unexpected swipe write: actor=%d target=%d liked=%v",
			swipeStore.lastActor, swipeStore.lastTarget, swipeStore.lastLiked)
	}
	if matchStore.calls != 1 {
		t.Fatalf("expected one match detection call, got %d", matchStore.calls)
	}
	if matchStore.lastUser != 101 || matchStore.lastTarget != 202 {
		t.Fatalf("unexpected match detection args: user=%d target=%d", matchStore.lastUser, matchStore.lastTarget)
	}
	if !outcome.MatchCreated {
		t.Fatalf("expected MatchCreated=true")
	}
	if outcome.MatchedUserID != 202 {
		t.Fatalf("unexpected matched user id: got %d want 202", outcome.MatchedUserID)
	}
}

func TestRecordLikeWithoutReciprocalLike(t *testing.T) {
	matchStore := &matchStoreStub{created: false}
	svc := newTestService(&txRunnerStub{}, &swipeStoreStub{}, matchStore)

	outcome, err := svc.Record(context.Background(), 101, 202, "like")
	if err != nil {
		t.Fatalf("record like: %v", err)
	}
	if outcome.MatchCreated {
		t.Fatalf("expected no match without reciprocal like")
	}
	if outcome.MatchedUserID != 0 {
		t.Fatalf("matched user id must be zero without a match, got %d", outcome.MatchedUserID)
	}
}

func TestRecordDislikeSkipsMatchDetection(t *testing.T) {
	swipeStore := &swipeStoreStub{}
	matchStore := &matchStoreStub{created: true}
	svc := newTestService(&txRunnerStub{}, swipeStore, matchStore)

	outcome, err := svc.Record(context.Background(), 101, 202, "dislike")
	if err != nil {
		t.Fatalf("record dislike: %v", err)
	}
	if swipeStore.lastLiked {
		t.Fatalf("dislike must be written with liked=false")
	}
	if matchStore.calls != 0 {
		t.Fatalf("match detection must not run for dislike, got %d calls", matchStore.calls)
	}
	if outcome.MatchCreated {
		t.Fatalf("dislike can never create a match")
	}
}

func TestRecordRateLimited(t *testing.T) {
	tx := &txRunnerStub{}
	swipeStore := &swipeStoreStub{}
	svc := newTestService(tx, swipeStore, &matchStoreStub{})
	svc.rateLimiter = rateLimiterStub{allowed: false, retryAfter: 7}

	_, err := svc.Record(context.Background(), 101, 202, "like")
	tooFast, ok := IsTooFast(err)
	if !ok {
		t.Fatalf("expected TooFastError, got %v", err)
	}
	if tooFast.RetryAfterSec != 7 {
		t.Fatalf("unexpected retry_after: got %d want 7", tooFast.RetryAfterSec)
	}
	if tx.calls != 0 || swipeStore.calls != 0 {
		t.Fatalf("nothing may be written when rate limited: tx=%d store=%d", tx.calls, swipeStore.calls)
	}
}

func TestRecordUsesServiceClock(t *testing.T) {
	swipeStore := &swipeStoreStub{}
	svc := newTestService(&txRunnerStub{}, swipeStore, &matchStoreStub{})
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := svc.Record(context.Background(), 101, 202, "dislike"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !swipeStore.lastNow.Equal(want) {
		t.Fatalf("unexpected swipe timestamp: got %v want %v", swipeStore.lastNow, want)
	}
}
