package usecase

import (
	"context"
	"errors"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/dto/response"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUser(ctx context.Context, username string) (*response.UserResponse, error)
	// UpdateUser and DeleteUser only act on the caller's own account.
	UpdateUser(ctx context.Context, actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, actor, username string) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	log         *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		userRepo:    repo.User,
		sessionRepo: repo.Session,
		log:         log.With(zap.String("service", "user")),
	}
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	_, err := us.userRepo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return nil, apperror.Conflict("user", "username already taken")
	case !errors.Is(err, repository.ErrNotFound):
		us.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, apperror.Unavailable(apperror.UserStore, err)
	}

	if err := us.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Validation("password cannot be processed")
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := us.userRepo.Save(ctx, user); err != nil {
		us.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, apperror.Unavailable(apperror.UserStore, err)
	}

	us.log.Info("User created", zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetUser(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeError(err, "user", apperror.UserStore)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if actor != username {
		us.log.Warn("Update of another user's account refused",
			zap.String("actor", actor), zap.String("username", username))
		return nil, apperror.Forbidden("cannot modify another user")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeError(err, "user", apperror.UserStore)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := us.ensureEmailFree(ctx, *req.Email); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return nil, apperror.Validation("password cannot be processed")
		}
		user.PasswordHash = hashedPassword
	}

	if err := us.userRepo.Save(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("username", username))
		return nil, apperror.Unavailable(apperror.UserStore, err)
	}

	us.log.Info("User updated", zap.String("username", username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// DeleteUser removes the account and its sessions. Reviews written by the
// user are kept.
func (us *userService) DeleteUser(ctx context.Context, actor, username string) error {
	if actor != username {
		return apperror.Forbidden("cannot delete another user")
	}

	if err := us.userRepo.Delete(ctx, username); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			us.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		}
		return storeError(err, "user", apperror.UserStore)
	}

	if err := us.sessionRepo.RevokeAllUserSessions(ctx, username); err != nil {
		us.log.Warn("Failed to revoke sessions of deleted user", zap.Error(err), zap.String("username", username))
	}

	return nil
}

func (us *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := us.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return apperror.Conflict("user", "email already registered")
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		us.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return apperror.Unavailable(apperror.UserStore, err)
	}
}
