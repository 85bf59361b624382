package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

// Auth signs administrators in with email and password.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
	cost         int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuth(userStore model.UserStore, tokenService *TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger,
		cost:         bcrypt.DefaultCost,
	}
}

// SignIn checks credentials and issues a session. Every failure caused by the
// credentials themselves is reported as model.ErrInvalidCredentials.
func (a *Auth) SignIn(ctx context.Context, email, password string) (model.Session, error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: sign-in attempt",
		"email", email)

	if email == "" || password == "" {
		return model.Session{}, model.ErrInvalidCredentials
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		// Compare anyway so unknown emails take as long as wrong passwords.
		_ = bcrypt.CompareHashAndPassword(a.dummy(), []byte(password))
		a.logger.Info("Auth service: sign-in failed",
			"email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: sign-in failed",
			"email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}

	session, err := a.tokenService.Issue(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to issue session",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Info("Auth service: signed in",
		"user_id", user.ID,
		"admin", user.IsAdmin)

	return session, nil
}

// Refresh exchanges a refresh token for a new session, revoking the old token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.Session, error) {
	userID, jti, err := a.tokenService.Rotate(ctx, refreshToken)
	if err != nil {
		return model.Session{}, err
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrInvalidToken
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	session, err := a.tokenService.IssueRotated(ctx, user, jti)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Debug("Auth service: session refreshed",
		"user_id", user.ID)

	return session, nil
}

// SignOut revokes the refresh token. Signing out twice is not an error.
func (a *Auth) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.tokenService.Revoke(ctx, refreshToken); err != nil {
		a.logger.Error("Auth service: failed to revoke refresh token",
			"error", err.Error())
		return err
	}
	return nil
}

// EnsureAdmin creates or updates the administrator account.
func (a *Auth) EnsureAdmin(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: admin email and password are required", model.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash admin password: %w", err)
	}

	user, err := a.userStore.Upsert(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to save admin user: %w", err)
	}

	a.logger.Info("Auth service: admin account ready",
		"user_id", user.ID,
		"email", email)

	return user, nil
}

func (a *Auth) dummy() []byte {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("portfolio-dummy-password"), a.cost)
	})
	return a.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
