package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	"github.com/Doudousmyle42/Vibezone/internal/pkg/validate"
	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
)

const (
	photoURLTTL    = 5 * time.Minute
	maxNameLen     = 60
	maxCityLen     = 100
	maxIcebreakers = 3
	maxIcebreaker  = 140
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
	Update(ctx context.Context, profile model.Profile) error
}

type PhotoURLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Profile struct {
	UserID      int64
	DisplayName string
	Birthdate   *time.Time
	Age         int
	City        string
	VibeTags    string
	Icebreakers []string
	PhotoURL    *string
}

type UpdateInput struct {
	DisplayName string
	Birthdate   time.Time
	City        string
	VibeTags    string
	Icebreakers []string
	PhotoKey    string
}

type Service struct {
	store     ProfileStore
	photoSign PhotoURLSigner
}

func NewService(store ProfileStore) *Service {
	return &Service{store: store}
}

// AttachPhotoSigner is optional; without it profiles render without URLs.
func (s *Service) AttachPhotoSigner(signer PhotoURLSigner) {
	s.photoSign = signer
}

func (s *Service) Get(ctx context.Context, userID int64) (Profile, error) {
	if userID <= 0 {
		return Profile{}, ErrValidation
	}
	if s.store == nil {
		return Profile{}, fmt.Errorf("profile store is nil")
	}

	rec, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	return s.toProfile(ctx, rec), nil
}

func (s *Service) Update(ctx context.Context, userID int64, input UpdateInput) (Profile, error) {
	if userID <= 0 {
		return Profile{}, ErrValidation
	}
	if err := validateUpdate(input); err != nil {
		return Profile{}, err
	}
	if s.store == nil {
		return Profile{}, fmt.Errorf("profile store is nil")
	}

	birthdate := input.Birthdate
	rec := model.Profile{
		UserID:      userID,
		DisplayName: input.DisplayName,
		Birthdate:   &birthdate,
		City:        input.City,
		VibeTags:    input.VibeTags,
		Icebreakers: input.Icebreakers,
		PhotoKey:    input.PhotoKey,
	}
	if err := s.store.Update(ctx, rec); err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	return s.Get(ctx, userID)
}

func (s *Service) toProfile(ctx context.Context, rec model.Profile) Profile {
	profile := Profile{
		UserID:      rec.UserID,
		DisplayName: rec.DisplayName,
		Birthdate:   rec.Birthdate,
		Age:         rec.Age,
		City:        rec.City,
		VibeTags:    rec.VibeTags,
		Icebreakers: rec.Icebreakers,
	}

	if s.photoSign != nil && rec.PhotoKey != "" {
		if url, err := s.photoSign.PresignGet(ctx, rec.PhotoKey, photoURLTTL); err == nil {
			profile.PhotoURL = &url
		}
	}

	return profile
}

func validateUpdate(input UpdateInput) error {
	if !validate.LengthBetween(strings.TrimSpace(input.DisplayName), 2, maxNameLen) {
		return ErrValidation
	}
	if input.Birthdate.IsZero() || input.Birthdate.After(time.Now()) {
		return ErrValidation
	}
	if !validate.Required(input.City) || !validate.LengthBetween(input.City, 1, maxCityLen) {
		return ErrValidation
	}
	if len(input.Icebreakers) > maxIcebreakers {
		return ErrValidation
	}
	for _, ib := range input.Icebreakers {
		if !validate.LengthBetween(ib, 0, maxIcebreaker) {
			return ErrValidation
		}
	}
	return nil
}
