package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	swipesvc "github.com/Doudousmyle42/Vibezone/internal/services/swipes"
)

type txRunnerStub struct{}

func (txRunnerStub) WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	return fn(ctx, nil)
}

type swipeStoreStub struct {
	err error
}

func (s swipeStoreStub) Create(_ context.Context, _ pgx.Tx, actorUserID, targetUserID int64, liked bool, now time.Time) (model.Swipe, error) {
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
	created bool
	matched bool
}

func (s matchStoreStub) CreateIfMutualLike(_ context.Context, _ pgx.Tx, userID, targetID int64) (*model.Match, error) {
	if !s.created {
		return nil, nil
	}
	userA, userB := userID, targetID
	if userB < userA {
		userA, userB = userB, userA
	}
	return &model.Match{ID: 1, UserAID: userA, UserBID: userB}, nil
}

func (s matchStoreStub) ExistsForPair(context.Context, pgx.Tx, int64, int64) (bool, error) {
	return s.matched, nil
}

func newSwipeService(swipeStore swipeStoreStub, matchStore matchStoreStub) *swipesvc.Service {
	return swipesvc.NewService(swipesvc.Dependencies{
		Tx:         txRunnerStub{},
		SwipeStore: swipeStore,
		MatchStore: matchStore,
	})
}

func TestSwipeHandlerRequiresAuth(t *testing.T) {
	h := NewSwipeHandler(newSwipeService(swipeStoreStub{}, matchStoreStub{}))

	body := bytes.NewReader([]byte(`{"target_id":202,"action":"like"}`))
	req := httptest.NewRequest(http.MethodPost, "/v1/swipes", body)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSwipeHandlerReportsMatch(t *testing.T) {
	h := NewSwipeHandler(newSwipeService(swipeStoreStub{}, matchStoreStub{created: true}))

	rec := performSwipeRequest(t, h, 202, "like")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		OK            bool  `json:"ok"`
		MatchCreated  bool  `json:"match_created"`
		MatchedUserID int64 `json:"matched_user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.OK || !payload.MatchCreated {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.MatchedUserID != 202 {
		t.Fatalf("unexpected matched user id: %d", payload.MatchedUserID)
	}
}

func TestSwipeHandlerReturnsConflictOnDuplicate(t *testing.T) {
	h := NewSwipeHandler(newSwipeService(swipeStoreStub{err: pgrepo.ErrDuplicateSwipe}, matchStoreStub{}))

	rec := performSwipeRequest(t, h, 202, "like")
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusConflict)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "DUPLICATE_SWIPE" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestSwipeHandlerRejectsSelfSwipe(t *testing.T) {
	h := NewSwipeHandler(newSwipeService(swipeStoreStub{}, matchStoreStub{}))

	rec := performSwipeRequest(t, h, 101, "like")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSwipeHandlerRejectsUnknownAction(t *testing.T) {
	h := NewSwipeHandler(newSwipeService(swipeStoreStub{}, matchStoreStub{}))

	rec := performSwipeRequest(t, h, 202, "superlike")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func performSwipeRequest(t *testing.T, h *SwipeHandler, targetID int64, action string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"target_id": targetID,
		"action":    action,
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/swipes", bytes.NewReader(body))
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 101,
		SID:    "sid-101",
	}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}
