package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
)

const (
	photoURLTTL  = 5 * time.Minute
	defaultLimit = 100
	maxLimit     = 200
)

var ErrValidation = errors.New("validation error")

type Repository interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]pgrepo.MatchListRecord, error)
}

type PhotoURLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type MatchItem struct {
	ID          int64
	OtherUserID int64
	DisplayName string
	Age         int
	City        string
	PhotoURL    *string
	CreatedAt   time.Time
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

// List returns the user's matches newest first.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]MatchItem, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if s.repo == nil {
		return nil, fmt.Errorf("match repository is nil")
	}

	records, err := s.repo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]MatchItem, 0, len(records))
	for _, rec := range records {
		item := MatchItem{
			ID:          rec.ID,
			OtherUserID: rec.OtherUserID,
			DisplayName: rec.DisplayName,
			Age:         rec.Age,
			City:        rec.City,
			CreatedAt:   rec.CreatedAt,
		}
		if s.photoSign != nil && rec.PhotoKey != "" {
			if url, signErr := s.photoSign.PresignGet(ctx, rec.PhotoKey, photoURLTTL); signErr == nil {
				item.PhotoURL = &url
			}
		}
		items = append(items, item)
	}

	return items, nil
}
