package usecase

import (
	"context"
	"errors"
	"time"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/dto/response"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate returns the username owning a valid session token.
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	repo   *repository.Repository // user and session stores
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, apperror.Unauthorized("invalid credentials")
	}
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.Unavailable(apperror.UserStore, err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("username", user.Username))
		return nil, apperror.Unauthorized("invalid credentials")
	}

	now := s.now().UTC()
	session := &entity.Session{
		Token:     uuid.NewString(),
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, apperror.Unavailable(apperror.SessionStore, err)
	}

	s.log.Info("User logged in", zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Logout revokes token. An already revoked token is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return apperror.Unavailable(apperror.SessionStore, err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	session, err := s.repo.Session.FindValidSession(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperror.Unauthorized("invalid or expired session")
	}
	if err != nil {
		s.log.Error("Failed to validate session", zap.Error(err))
		return "", apperror.Unavailable(apperror.SessionStore, err)
	}
	return session.Username, nil
}
