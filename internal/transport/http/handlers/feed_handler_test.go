package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	feedsvc "github.com/Doudousmyle42/Vibezone/internal/services/feed"
)

type feedRepoStub struct {
	rec pgrepo.CandidateRecord
	err error
}

func (s feedRepoStub) NextCandidate(context.Context, int64) (pgrepo.CandidateRecord, error) {
	if s.err != nil {
		return pgrepo.CandidateRecord{}, s.err
	}
	return s.rec, nil
}

func TestFeedHandlerReturnsCandidate(t *testing.T) {
	h := NewFeedHandler(feedsvc.NewService(feedRepoStub{rec: pgrepo.CandidateRecord{
		UserID:      202,
		DisplayName: "Lena",
		Age:         27,
		City:        "Lyon",
	}}))

	rec := performFeedRequest(t, h, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		Empty     bool `json:"empty"`
		Candidate *struct {
			UserID      int64  `json:"user_id"`
			DisplayName string `json:"display_name"`
		} `json:"candidate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Empty {
		t.Fatalf("feed must not be empty")
	}
	if payload.Candidate == nil || payload.Candidate.UserID != 202 || payload.Candidate.DisplayName != "Lena" {
		t.Fatalf("unexpected candidate: %+v", payload.Candidate)
	}
}

func TestFeedHandlerReturnsEmptyState(t *testing.T) {
	h := NewFeedHandler(feedsvc.NewService(feedRepoStub{err: pgrepo.ErrNoCandidates}))

	rec := performFeedRequest(t, h, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		Empty     bool `json:"empty"`
		Candidate any  `json:"candidate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Empty {
		t.Fatalf("expected empty=true")
	}
	if payload.Candidate != nil {
		t.Fatalf("expected no candidate in empty state")
	}
}

func TestFeedHandlerRequiresAuth(t *testing.T) {
	h := NewFeedHandler(feedsvc.NewService(feedRepoStub{}))

	rec := performFeedRequest(t, h, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func performFeedRequest(t *testing.T, h *FeedHandler, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	if authenticated {
		req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
			UserID: 101,
			SID:    "sid-101",
		}))
	}
	rec := httptest.NewRecorder()
	h.Next(rec, req)
	return rec
}
