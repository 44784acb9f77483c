package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
	"github.com/Doudousmyle42/Vibezone/internal/pkg/validate"
	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
)

const (
	MinRefreshTTL = 30 * 24 * time.Hour
	MaxRefreshTTL = 90 * 24 * time.Hour

	minPasswordLen = 8
	maxEmailLen    = 120
	maxNameLen     = 60
	maxCityLen     = 100
	maxIcebreakers = 3
	maxIcebreaker  = 140
)

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, refreshToken string) error
	GetSession(ctx context.Context, sid string) (SessionRecord, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (SessionRecord, error)
	RotateRefresh(ctx context.Context, sid, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sid string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

type UserStore interface {
	Create(ctx context.Context, tx pgx.Tx, email, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

type ProfileStore interface {
	Create(ctx context.Context, tx pgx.Tx, profile model.Profile) error
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type Registration struct {
	Email       string
	Password    string
	DisplayName string
	Birthdate   time.Time
	City        string
	VibeTags    string
	Icebreakers []string
}

type Service struct {
	jwt        *JWTManager
	sessions   SessionStore
	users      UserStore
	profiles   ProfileStore
	tx         TxRunner
	refreshTTL time.Duration
	now        func() time.Time
}

type Dependencies struct {
	JWT      *JWTManager
	Sessions SessionStore
	Users    UserStore
	Profiles ProfileStore
	Tx       TxRunner
}

func NewService(deps Dependencies, refreshTTL time.Duration) *Service {
	if refreshTTL < MinRefreshTTL {
		refreshTTL = MinRefreshTTL
	}
	if refreshTTL > MaxRefreshTTL {
		refreshTTL = MaxRefreshTTL
	}

	return &Service{
		jwt:        deps.JWT,
		sessions:   deps.Sessions,
		users:      deps.Users,
		profiles:   deps.Profiles,
		tx:         deps.Tx,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Register creates the user row and its profile in one transaction. The
// caller logs in afterwards; no tokens are issued here.
func (s *Service) Register(ctx context.Context, reg Registration) (Me, error) {
	if err := validateRegistration(reg); err != nil {
		return Me{}, err
	}
	if s.users == nil || s.profiles == nil || s.tx == nil {
		return Me{}, fmt.Errorf("register dependencies are not configured")
	}

	passwordHash, err := HashPassword(reg.Password)
	if err != nil {
		return Me{}, err
	}

	var created model.User
	if err := s.tx.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		user, err := s.users.Create(txCtx, tx, reg.Email, passwordHash)
		if err != nil {
			if errors.Is(err, pgrepo.ErrEmailTaken) {
				return ErrEmailTaken
			}
			return err
		}
		created = user

		birthdate := reg.Birthdate
		return s.profiles.Create(txCtx, tx, model.Profile{
			UserID:      user.ID,
			DisplayName: reg.DisplayName,
			Birthdate:   &birthdate,
			City:        reg.City,
			VibeTags:    reg.VibeTags,
			Icebreakers: trimIcebreakers(reg.Icebreakers),
		})
	}); err != nil {
		return Me{}, err
	}

	return Me{ID: created.ID, Email: created.Email}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if !validate.Email(email) || strings.TrimSpace(password) == "" {
		return AuthResult{}, ErrInvalidInput
	}
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("login dependencies are not configured")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("find user for login: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return AuthResult{}, ErrUnauthorized
	}

	return s.issueForUser(ctx, user.ID, user.Email)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("get refresh token session: %w", err)
	}
	if s.now().After(session.ExpiresAt) {
		return AuthResult{}, ErrUnauthorized
	}

	newRefreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	newExpiresAt := s.now().Add(s.refreshTTL)
	if err := s.sessions.RotateRefresh(ctx, session.SID, refreshToken, newRefreshToken, newExpiresAt); err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(session.UserID, session.SID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  newRefreshToken,
		AccessExpires: accessExpires,
		Me:            Me{ID: session.UserID},
	}, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete all sessions: %w", err)
	}
	return nil
}

func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (AccessClaims, error) {
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return AccessClaims{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return AccessClaims{}, ErrUnauthorized
		}
		return AccessClaims{}, fmt.Errorf("get session: %w", err)
	}

	if session.UserID != claims.UserID {
		return AccessClaims{}, ErrUnauthorized
	}
	if s.now().After(session.ExpiresAt) {
		return AccessClaims{}, ErrUnauthorized
	}

	return claims, nil
}

func (s *Service) issueForUser(ctx context.Context, userID int64, email string) (AuthResult, error) {
	sessionID := NewSessionID()
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionExpiresAt := s.now().Add(s.refreshTTL)
	session := SessionRecord{
		SID:       sessionID,
		UserID:    userID,
		ExpiresAt: sessionExpiresAt,
	}
	if err := s.sessions.Create(ctx, session, refreshToken); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(userID, sessionID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpires: accessExpires,
		Me:            Me{ID: userID, Email: email},
	}, nil
}

func validateRegistration(reg Registration) error {
	if !validate.Email(reg.Email) || !validate.LengthBetween(reg.Email, 3, maxEmailLen) {
		return ErrInvalidInput
	}
	if len(reg.Password) < minPasswordLen {
		return ErrInvalidInput
	}
	if !validate.LengthBetween(strings.TrimSpace(reg.DisplayName), 2, maxNameLen) {
		return ErrInvalidInput
	}
	if reg.Birthdate.IsZero() || reg.Birthdate.After(time.Now()) {
		return ErrInvalidInput
	}
	if !validate.Required(reg.City) || !validate.LengthBetween(reg.City, 1, maxCityLen) {
		return ErrInvalidInput
	}
	if len(reg.Icebreakers) > maxIcebreakers {
		return ErrInvalidInput
	}
	for _, ib := range reg.Icebreakers {
		if !validate.LengthBetween(ib, 0, maxIcebreaker) {
			return ErrInvalidInput
		}
	}
	return nil
}

func trimIcebreakers(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
