package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	messagesvc "github.com/Doudousmyle42/Vibezone/internal/services/messages"
)

type messageStoreStub struct {
	listed []model.Message
}

func (s messageStoreStub) Create(_ context.Context, _ pgx.Tx, senderUserID, recipientUserID int64, body string, now time.Time) (model.Message, error) {
	return model.Message{
		ID:              1,
		SenderUserID:    senderUserID,
		RecipientUserID: recipientUserID,
		Body:            body,
		CreatedAt:       now,
	}, nil
}

func (s messageStoreStub) ListBetween(context.Context, int64, int64) ([]model.Message, error) {
	return s.listed, nil
}

func newMessagesRouter(matched bool, store messageStoreStub) chi.Router {
	svc := messagesvc.NewService(messagesvc.Dependencies{
		Tx:           txRunnerStub{},
		MessageStore: store,
		MatchStore:   matchStoreStub{matched: matched},
	}, 500)
	h := NewMessagesHandler(svc)

	r := chi.NewRouter()
	r.Get("/v1/matches/{userID}/conversation", h.Open)
	r.Get("/v1/matches/{userID}/messages", h.History)
	r.Post("/v1/matches/{userID}/messages", h.Send)
	return r
}

func TestOpenConversation(t *testing.T) {
	r := newMessagesRouter(true, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodGet, "/v1/matches/202/conversation", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.OK {
		t.Fatalf("expected ok=true, got %+v", payload)
	}
}

func TestOpenConversationForbiddenWithoutMatch(t *testing.T) {
	r := newMessagesRouter(false, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodGet, "/v1/matches/202/conversation", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusForbidden)
	}
}

func TestSendMessageForbiddenWithoutMatch(t *testing.T) {
	r := newMessagesRouter(false, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodPost, "/v1/matches/202/messages", `{"body":"hey"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusForbidden)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "NOT_MATCHED" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestSendMessageCreated(t *testing.T) {
	r := newMessagesRouter(true, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodPost, "/v1/matches/202/messages", `{"body":"hey there"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusCreated)
	}

	var payload struct {
		ID              int64  `json:"id"`
		SenderUserID    int64  `json:"sender_user_id"`
		RecipientUserID int64  `json:"recipient_user_id"`
		Body            string `json:"body"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.SenderUserID != 101 || payload.RecipientUserID != 202 || payload.Body != "hey there" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSendMessageRejectsEmptyBody(t *testing.T) {
	r := newMessagesRouter(true, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodPost, "/v1/matches/202/messages", `{"body":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHistoryForbiddenWithoutMatch(t *testing.T) {
	r := newMessagesRouter(false, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodGet, "/v1/matches/202/messages", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHistoryReturnsMessagesInOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r := newMessagesRouter(true, messageStoreStub{listed: []model.Message{
		{ID: 1, SenderUserID: 101, RecipientUserID: 202, Body: "hi", CreatedAt: base},
		{ID: 2, SenderUserID: 202, RecipientUserID: 101, Body: "hey!", CreatedAt: base.Add(time.Minute)},
	}})

	rec := performMessageRequest(t, r, http.MethodGet, "/v1/matches/202/messages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		Items []struct {
			ID   int64  `json:"id"`
			Body string `json:"body"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(payload.Items))
	}
	if payload.Items[0].ID != 1 || payload.Items[1].ID != 2 {
		t.Fatalf("unexpected ordering: %+v", payload.Items)
	}
}

func TestHistoryRejectsInvalidUserID(t *testing.T) {
	r := newMessagesRouter(true, messageStoreStub{})

	rec := performMessageRequest(t, r, http.MethodGet, "/v1/matches/abc/messages", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func performMessageRequest(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		UserID: 101,
		SID:    "sid-101",
	}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
