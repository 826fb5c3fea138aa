package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, newFakeTokenStore())

	user, err := svc.Register(context.Background(), "alice", "x", "alice@example.com", entity.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("x")))
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeTokenStore())

	_, err := svc.Register(context.Background(), "alice", "x", "", "customer")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeTokenStore())

	_, err := svc.Register(context.Background(), "", "x", "", entity.RoleSeller)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "alice", "", "", entity.RoleSeller)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeTokenStore())

	_, err := svc.Register(context.Background(), "alice", "x", "", entity.RoleSeller)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "y", "", entity.RoleSeller)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenStore()
	svc := NewUserService(users, tokens)

	user, err := svc.Register(context.Background(), "alice", "old", "", entity.RoleSeller)
	require.NoError(t, err)
	tokens.Save(context.Background(), "alice", "some-token", 0)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "old", "new"))

	updated, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new")))

	// The outstanding token is revoked
	stored, err := tokens.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestChangePasswordWrongOld(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, newFakeTokenStore())

	user, err := svc.Register(context.Background(), "alice", "old", "", entity.RoleSeller)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "new")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeTokenStore())

	err := svc.DeleteUser(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
