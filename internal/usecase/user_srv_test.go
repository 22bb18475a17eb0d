package usecase

import (
	"context"
	"testing"
	"time"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/dto/request"
	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRequest() *request.CreateUserRequest {
	return &request.CreateUserRequest{
		Username:  "theUser",
		FirstName: "John",
		LastName:  "James",
		Email:     "john@email.com",
		Password:  "12345",
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.User.CreateUser(ctx, newUserRequest())
	require.NoError(t, err)
	assert.Equal(t, "theUser", resp.Username)
	assert.NotEmpty(t, resp.ID)

	stored, err := env.repo.User.FindByUsername(ctx, "theUser")
	require.NoError(t, err)
	assert.NotEqual(t, "12345", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("12345", stored.PasswordHash))
}

func TestCreateUser_Conflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.User.CreateUser(ctx, newUserRequest())
	require.NoError(t, err)

	_, err = env.service.User.CreateUser(ctx, newUserRequest())
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	sameEmail := newUserRequest()
	sameEmail.Username = "otherUser"
	_, err = env.service.User.CreateUser(ctx, sameEmail)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestCreateUser_Validation(t *testing.T) {
	env := newTestEnv(t)
	req := newUserRequest()
	req.Email = "not-an-email"

	_, err := env.service.User.CreateUser(context.Background(), req)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "theUser")

	resp, err := env.service.User.GetUser(context.Background(), "theUser")
	require.NoError(t, err)
	assert.Equal(t, "theUser@email.com", resp.Email)

	_, err = env.service.User.GetUser(context.Background(), "ghost")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	env.store.fail("get", repository.UserTable.Name)
	_, err = env.service.User.GetUser(context.Background(), "theUser")
	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
	assert.Equal(t, apperror.UserStore, apperror.SubjectOf(err))
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "theUser")
	env.seedUser(t, "otherUser")
	ctx := context.Background()

	resp, err := env.service.User.UpdateUser(ctx, "theUser", "theUser", &request.UpdateUserRequest{
		FirstName: strPtr("Johnny"),
		Password:  strPtr("secret"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", resp.FirstName)
	assert.Equal(t, "James", resp.LastName)

	stored, err := env.repo.User.FindByUsername(ctx, "theUser")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("secret", stored.PasswordHash))

	_, err = env.service.User.UpdateUser(ctx, "theUser", "theUser", &request.UpdateUserRequest{
		Email: strPtr("otherUser@email.com"),
	})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = env.service.User.UpdateUser(ctx, "otherUser", "theUser", &request.UpdateUserRequest{
		FirstName: strPtr("Mallory"),
	})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestDeleteUser_RevokesSessions(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "theUser")
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, env.repo.Session.Create(ctx, &entity.Session{
		Token: "t-1", Username: "theUser", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	err := env.service.User.DeleteUser(ctx, "otherUser", "theUser")
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	require.NoError(t, env.service.User.DeleteUser(ctx, "theUser", "theUser"))

	_, err = env.repo.User.FindByUsername(ctx, "theUser")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.repo.Session.FindValidSession(ctx, "t-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = env.service.User.DeleteUser(ctx, "theUser", "theUser")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
