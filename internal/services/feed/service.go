package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
)

const photoURLTTL = 5 * time.Minute

var (
	ErrValidation = errors.New("validation error")

	// ErrNoCandidates means the viewer has swiped through everyone. The
	// HTTP layer renders an empty-state payload, not an error.
	ErrNoCandidates = errors.New("no candidates left")
)

type Repository interface {
	NextCandidate(ctx context.Context, viewerUserID int64) (pgrepo.CandidateRecord, error)
}

type PhotoURLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Candidate struct {
	UserID      int64
	DisplayName string
	Age         int
	City        string
	VibeTags    string
	Icebreakers []string
	PhotoURL    *string
}

type Service struct {
	repo      Repository
	photoSign PhotoURLSigner
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AttachPhotoSigner(signer PhotoURLSigner) {
	s.photoSign = signer
}

// Next returns the next profile for the viewer to swipe on: the first user
// by ascending id who is not the viewer and has not been swiped yet.
func (s *Service) Next(ctx context.Context, viewerUserID int64) (Candidate, error) {
	if viewerUserID <= 0 {
		return Candidate{}, ErrValidation
	}
	if s.repo == nil {
		return Candidate{}, fmt.Errorf("feed repository is nil")
	}

	rec, err := s.repo.NextCandidate(ctx, viewerUserID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrNoCandidates) {
			return Candidate{}, ErrNoCandidates
		}
		return Candidate{}, err
	}

	candidate := Candidate{
		UserID:      rec.UserID,
		DisplayName: rec.DisplayName,
		Age:         rec.Age,
		City:        rec.City,
		VibeTags:    rec.VibeTags,
		Icebreakers: rec.Icebreakers,
	}

	if s.photoSign != nil && rec.PhotoKey != "" {
		if url, signErr := s.photoSign.PresignGet(ctx, rec.PhotoKey, photoURLTTL); signErr == nil {
			candidate.PhotoURL = &url
		}
	}

	return candidate, nil
}
