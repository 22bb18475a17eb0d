package repository

import (
	"context"
	"fmt"

	"restaurant-review/internal/data/entity"
	"restaurant-review/pkg/kvstore"

	"go.uber.org/zap"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, username string) error
}

type userRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

func NewUserRepository(store kvstore.Store, log *zap.Logger) UserRepository {
	return &userRepository{
		store: store,
		log:   log.With(zap.String("repository", "user")),
	}
}

// Save writes the user unconditionally, replacing any existing record.
func (ur *userRepository) Save(ctx context.Context, user *entity.User) error {
	item := kvstore.Item{
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"password":   user.PasswordHash,
	}

	if err := ur.store.Put(ctx, UserTable, user.Username, item); err != nil {
		return fmt.Errorf("save user %s: %w", user.Username, err)
	}
	return nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	item, err := ur.store.Get(ctx, UserTable, username)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	return userFromItem(item), nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	items, err := ur.store.Query(ctx, UserTable, "email", email)
	if err != nil {
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("find user by email %s: %w", email, ErrNotFound)
	}
	if len(items) > 1 {
		ur.log.Warn("Email shared by several users", zap.String("email", email), zap.Int("count", len(items)))
	}
	return userFromItem(items[0]), nil
}

func (ur *userRepository) Delete(ctx context.Context, username string) error {
	if err := ur.store.Delete(ctx, UserTable, username); err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}

	ur.log.Info("User deleted", zap.String("username", username))
	return nil
}

func userFromItem(item kvstore.Item) *entity.User {
	return &entity.User{
		ID:           stringAttr(item, "id"),
		Username:     stringAttr(item, "username"),
		FirstName:    stringAttr(item, "first_name"),
		LastName:     stringAttr(item, "last_name"),
		Email:        stringAttr(item, "email"),
		PasswordHash: stringAttr(item, "password"),
	}
}
