package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

var _ model.IdentityVerifier = (*TokenService)(nil)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger, now: time.Now}
}

// Keep in sync with the token manager. Used only for persistence; validity is
// checked against the JWT claims at parse time.
const (
	refreshTTL = 30 * 24 * time.Hour
)

// Issue creates a fresh access/refresh pair for user.
func (s *TokenService) Issue(ctx context.Context, user model.User) (model.Session, error) {
	return s.issue(ctx, user, nil)
}

// Rotate validates a presented refresh token and revokes it. The caller issues the
// replacement pair with IssueRotated.
func (s *TokenService) Rotate(ctx context.Context, presentedRefresh string) (uuid.UUID, string, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, "", model.ErrInvalidToken
	}
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			// A revoked token presented again means the chain leaked.
			s.logger.Warn("Token service: revoked refresh token reused",
				"user_id", rt.UserID,
				"jti", jti)
			if rerr := s.store.RevokeAllByUser(ctx, rt.UserID); rerr != nil {
				s.logger.Error("Token service: failed to revoke user tokens",
					"user_id", rt.UserID,
					"error", rerr.Error())
			}
		}
		return uuid.Nil, "", err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	return userID, jti, nil
}

// IssueRotated issues a pair that records the token it replaced.
func (s *TokenService) IssueRotated(ctx context.Context, user model.User, rotatedFrom string) (model.Session, error) {
	return s.issue(ctx, user, &rotatedFrom)
}

func (s *TokenService) issue(ctx context.Context, user model.User, rotatedFrom *string) (model.Session, error) {
	principal := user.Principal()

	access, expiresAt, err := s.manager.GenerateAccessToken(principal)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         user.ID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, rt); err != nil {
		return model.Session{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return model.Session{
		Principal:    principal,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

// Revoke revokes the presented refresh token. Unknown or malformed tokens are ignored.
func (s *TokenService) Revoke(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		s.logger.Debug("Token service: ignoring unparsable refresh token on revoke",
			"error", err.Error())
		return nil
	}
	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// Verify resolves an access token into the principal it was issued to.
func (s *TokenService) Verify(_ context.Context, token string) (model.Principal, error) {
	p, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	return p, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
