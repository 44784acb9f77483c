package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	feedsvc "github.com/Doudousmyle42/Vibezone/internal/services/feed"
	"github.com/Doudousmyle42/Vibezone/internal/transport/http/dto"
	httperrors "github.com/Doudousmyle42/Vibezone/internal/transport/http/errors"
)

type FeedHandler struct {
	service *feedsvc.Service
}

func NewFeedHandler(service *feedsvc.Service) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) Next(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	candidate, err := h.service.Next(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, feedsvc.ErrNoCandidates):
			httperrors.Write(w, http.StatusOK, dto.NextCandidateResponse{Empty: true})
		case errors.Is(err, feedsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid feed request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load feed")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NextCandidateResponse{
		Candidate: &dto.FeedCandidatePayload{
			UserID:      candidate.UserID,
			DisplayName: candidate.DisplayName,
			Age:         candidate.Age,
			City:        candidate.City,
			VibeTags:    candidate.VibeTags,
			Icebreakers: candidate.Icebreakers,
			PhotoURL:    candidate.PhotoURL,
		},
	})
}
