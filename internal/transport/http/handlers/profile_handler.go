package handlers

import (
	"errors"
	"net/http"
	"time"

	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	profilesvc "github.com/Doudousmyle42/Vibezone/internal/services/profiles"
	"github.com/Doudousmyle42/Vibezone/internal/transport/http/dto"
	httperrors "github.com/Doudousmyle42/Vibezone/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	birthdate, err := time.Parse(birthdateLayout, req.Birthdate)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "birthdate must be YYYY-MM-DD")
		return
	}

	profile, err := h.service.Update(r.Context(), identity.UserID, profilesvc.UpdateInput{
		DisplayName: req.DisplayName,
		Birthdate:   birthdate,
		City:        req.City,
		VibeTags:    req.VibeTags,
		Icebreakers: req.Icebreakers,
		PhotoKey:    req.PhotoKey,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toProfileResponse(profile))
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "profile validation failed")
	case errors.Is(err, profilesvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process profile")
	}
}

func toProfileResponse(profile profilesvc.Profile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Age:         profile.Age,
		City:        profile.City,
		VibeTags:    profile.VibeTags,
		Icebreakers: profile.Icebreakers,
		PhotoURL:    profile.PhotoURL,
	}
	if profile.Birthdate != nil {
		resp.Birthdate = profile.Birthdate.Format(birthdateLayout)
	}
	return resp
}
