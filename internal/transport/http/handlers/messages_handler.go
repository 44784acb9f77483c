package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	messagesvc "github.com/Doudousmyle42/Vibezone/internal/services/messages"
	"github.com/Doudousmyle42/Vibezone/internal/transport/http/dto"
	httperrors "github.com/Doudousmyle42/Vibezone/internal/transport/http/errors"
)

type MessagesHandler struct {
	service *messagesvc.Service
}

func NewMessagesHandler(service *messagesvc.Service) *MessagesHandler {
	return &MessagesHandler{service: service}
}

func (h *MessagesHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	otherUserID, ok := userIDFromURL(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	items, err := h.service.History(r.Context(), identity.UserID, otherUserID)
	if err != nil {
		handleMessageError(w, err)
		return
	}

	payload := make([]dto.MessagePayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, toMessagePayload(item))
	}

	httperrors.Write(w, http.StatusOK, dto.ConversationResponse{Items: payload})
}

// Open reports whether the conversation is reachable without loading it.
func (h *MessagesHandler) Open(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	otherUserID, ok := userIDFromURL(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	if err := h.service.Open(r.Context(), identity.UserID, otherUserID); err != nil {
		handleMessageError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OpenConversationResponse{OK: true})
}

func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	otherUserID, ok := userIDFromURL(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	msg, err := h.service.Send(r.Context(), identity.UserID, otherUserID, req.Body)
	if err != nil {
		handleMessageError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toMessagePayload(msg))
}

func handleMessageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, messagesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid message request")
	case errors.Is(err, messagesvc.ErrNotMatched):
		writeForbidden(w, "NOT_MATCHED", "messaging requires a mutual match")
	default:
		if tf, ok := messagesvc.IsTooFast(err); ok {
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "TOO_FAST",
				Message:       "too many messages, slow down",
				RetryAfterSec: tf.RetryAfterSec,
			})
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to process message")
	}
}

func toMessagePayload(msg model.Message) dto.MessagePayload {
	return dto.MessagePayload{
		ID:              msg.ID,
		SenderUserID:    msg.SenderUserID,
		RecipientUserID: msg.RecipientUserID,
		Body:            msg.Body,
		CreatedAt:       msg.CreatedAt,
	}
}

func userIDFromURL(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
