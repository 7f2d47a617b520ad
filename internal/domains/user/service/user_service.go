package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/user"
	"book-catalog/pkg/cache"
	"book-catalog/pkg/jwt"
)

type userService struct {
	repo     user.Repository
	verifier CredentialVerifier
	tokens   *jwt.Manager
	cache    cache.Cache
}

// NewUserService - cache giữ danh sách session đã logout cho tới khi token hết hạn
func NewUserService(repo user.Repository, verifier CredentialVerifier, tokens *jwt.Manager, c cache.Cache) user.Service {
	return &userService{repo: repo, verifier: verifier, tokens: tokens, cache: c}
}

func revokedKey(jti string) string {
	return cache.Key(cache.NamespaceRevokedSession, jti)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.Session, error) {
	// STEP 1: VALIDATE
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, user.CredentialsError(err)
	}

	// STEP 2: AUTHENTICATE
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Warn().Str("username", req.Username).Msg("Login with unknown username")
		}
		return nil, err
	}
	if !s.verifier.Verify(u.Password, req.Password) {
		log.Warn().Str("username", req.Username).Msg("Login with wrong password")
		return nil, user.ErrInvalidPassword
	}

	// STEP 3: ISSUE SESSION TOKEN
	token, claims, err := s.tokens.GenerateSessionToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", u.ID).Msg("User logged in")
	return &user.Session{
		Token:     token,
		UserID:    u.ID,
		Username:  u.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	claims, err := s.CurrentSession(ctx, token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return user.ErrNotLoggedIn
	}
	if err := s.cache.Set(ctx, revokedKey(claims.ID), true, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	log.Info().Int64("user_id", claims.UserID).Msg("User logged out")
	return nil
}

func (s *userService) CurrentSession(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, user.ErrNotLoggedIn
	}

	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, user.ErrNotLoggedIn
	}

	revoked, err := s.cache.Exists(ctx, revokedKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return nil, user.ErrNotLoggedIn
	}
	return claims, nil
}

func (s *userService) EnsureUser(ctx context.Context, username, password string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	stored, err := s.verifier.Prepare(password)
	if err != nil {
		return err
	}
	err = s.repo.Create(ctx, &user.User{Username: username, Password: stored})
	if errors.Is(err, user.ErrUsernameTaken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed user %q: %w", username, err)
	}

	log.Info().Str("username", username).Msg("Seed user created")
	return nil
}
