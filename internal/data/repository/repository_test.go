package repository

import (
	"context"
	"testing"
	"time"

	"restaurant-review/internal/data/entity"
	"restaurant-review/pkg/kvstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRepository(kvstore.NewRedisStore(client, zap.NewNop()), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestUserRepository_SaveAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           "u-1",
		Username:     "theUser",
		FirstName:    "The",
		LastName:     "User",
		Email:        "the@user.dev",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.User.Save(ctx, user))

	byName, err := repo.User.FindByUsername(ctx, "theUser")
	require.NoError(t, err)
	assert.Equal(t, user, byName)

	byEmail, err := repo.User.FindByEmail(ctx, "the@user.dev")
	require.NoError(t, err)
	assert.Equal(t, "theUser", byEmail.Username)

	_, err = repo.User.FindByEmail(ctx, "nobody@user.dev")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.User.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantRepository_SaveIsUpsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	restaurant := &entity.Restaurant{ID: "X", Name: "Joe's Pizza", Latitude: 40.75, Longitude: -73.98, Address: "1435 Broadway"}
	require.NoError(t, repo.Restaurant.Save(ctx, restaurant))

	restaurant.Name = "Joe's Pizza Broadway"
	require.NoError(t, repo.Restaurant.Save(ctx, restaurant))

	got, err := repo.Restaurant.FindByID(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, restaurant, got)

	_, err = repo.Restaurant.FindByID(ctx, "Y")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewRepository_RoundTripKeepsOptionalFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.UTC)

	withContent := &entity.Review{
		ID:           "r-1",
		Timestamps:   entity.Timestamps{CreatedAt: created, UpdatedAt: created},
		Username:     "theUser",
		RestaurantID: "X",
		Rating:       4,
		FavoriteFood: "pizza",
		Starred:      true,
		Content:      strPtr("great"),
		Author: entity.User{
			ID:        "u-1",
			Username:  "theUser",
			FirstName: "John",
			LastName:  "James",
			Email:     "theUser@email.com",
		},
		Restaurant: entity.Restaurant{
			ID:        "X",
			Name:      "Joe's Pizza",
			Latitude:  40.75,
			Longitude: -73.98,
			Address:   "1435 Broadway",
		},
	}
	bare := &entity.Review{
		ID:           "r-2",
		Timestamps:   entity.Timestamps{CreatedAt: created, UpdatedAt: created},
		Username:     "theUser",
		RestaurantID: "X",
		Rating:       2,
		FavoriteFood: "soda",
	}
	require.NoError(t, repo.Review.Save(ctx, withContent))
	require.NoError(t, repo.Review.Save(ctx, bare))

	got, err := repo.Review.FindByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, withContent, got)

	got, err = repo.Review.FindByID(ctx, "r-2")
	require.NoError(t, err)
	assert.Nil(t, got.Content)
	assert.Nil(t, got.PhotoURL)
	assert.False(t, got.Starred)
}

func TestReviewRepository_ListsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Hour)
		restaurant := "X"
		if id == "b" {
			restaurant = "Y"
		}
		require.NoError(t, repo.Review.Save(ctx, &entity.Review{
			ID:           id,
			Timestamps:   entity.Timestamps{CreatedAt: at, UpdatedAt: at},
			Username:     "theUser",
			RestaurantID: restaurant,
			Rating:       3,
			FavoriteFood: "pizza",
		}))
	}

	byUser, err := repo.Review.FindByUsername(ctx, "theUser")
	require.NoError(t, err)
	require.Len(t, byUser, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{byUser[0].ID, byUser[1].ID, byUser[2].ID})

	byRestaurant, err := repo.Review.FindByRestaurantID(ctx, "X")
	require.NoError(t, err)
	require.Len(t, byRestaurant, 2)
	assert.Equal(t, "c", byRestaurant[0].ID)

	require.NoError(t, repo.Review.Delete(ctx, "c"))
	byRestaurant, err = repo.Review.FindByRestaurantID(ctx, "X")
	require.NoError(t, err)
	require.Len(t, byRestaurant, 1)
	assert.Equal(t, "a", byRestaurant[0].ID)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	valid := &entity.Session{Token: "t-1", Username: "theUser", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	expired := &entity.Session{Token: "t-2", Username: "theUser", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Session.Create(ctx, valid))
	require.NoError(t, repo.Session.Create(ctx, expired))

	got, err := repo.Session.FindValidSession(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "theUser", got.Username)

	_, err = repo.Session.FindValidSession(ctx, "t-2")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Session.Revoke(ctx, "t-1"))
	_, err = repo.Session.FindValidSession(ctx, "t-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepository_RevokeAllUserSessions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, token := range []string{"t-1", "t-2"} {
		require.NoError(t, repo.Session.Create(ctx, &entity.Session{
			Token: token, Username: "theUser", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
		}))
	}
	require.NoError(t, repo.Session.Create(ctx, &entity.Session{
		Token: "t-3", Username: "other", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, repo.Session.RevokeAllUserSessions(ctx, "theUser"))

	_, err := repo.Session.FindValidSession(ctx, "t-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Session.FindValidSession(ctx, "t-2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Session.FindValidSession(ctx, "t-3")
	assert.NoError(t, err)
}

func TestRepository_Bootstrap(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Bootstrap(context.Background()))
	require.NoError(t, repo.Ping(context.Background()))
}
