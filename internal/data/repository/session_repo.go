package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-review/internal/data/entity"
	"restaurant-review/pkg/kvstore"

	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllUserSessions(ctx context.Context, username string) error
}

type sessionRepository struct {
	store kvstore.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewSessionRepository(store kvstore.Store, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		store: store,
		log:   log.With(zap.String("repository", "session")),
		now:   time.Now,
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	item := kvstore.Item{
		"token":      session.Token,
		"username":   session.Username,
		"created_at": formatTimestamp(session.CreatedAt),
		"expires_at": formatTimestamp(session.ExpiresAt),
	}

	if err := r.store.Put(ctx, SessionTable, session.Token, item); err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("username", session.Username),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindValidSession returns ErrNotFound for unknown and expired tokens alike.
func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	item, err := r.store.Get(ctx, SessionTable, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	session, err := sessionFromItem(item)
	if err != nil {
		return nil, err
	}

	if session.IsExpired(r.now()) {
		if err := r.store.Delete(ctx, SessionTable, token); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			r.log.Warn("Failed to drop expired session", zap.Error(err))
		}
		return nil, fmt.Errorf("session expired: %w", ErrNotFound)
	}

	return session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	if err := r.store.Delete(ctx, SessionTable, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *sessionRepository) RevokeAllUserSessions(ctx context.Context, username string) error {
	items, err := r.store.Query(ctx, SessionTable, "username", username)
	if err != nil {
		return fmt.Errorf("list sessions of %s: %w", username, err)
	}

	for _, item := range items {
		token := stringAttr(item, "token")
		if err := r.store.Delete(ctx, SessionTable, token); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return fmt.Errorf("revoke session of %s: %w", username, err)
		}
	}

	r.log.Info("User sessions revoked", zap.String("username", username), zap.Int("count", len(items)))
	return nil
}

func sessionFromItem(item kvstore.Item) (*entity.Session, error) {
	createdAt, err := timeAttr(item, "created_at")
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	expiresAt, err := timeAttr(item, "expires_at")
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &entity.Session{
		Token:     stringAttr(item, "token"),
		Username:  stringAttr(item, "username"),
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}
