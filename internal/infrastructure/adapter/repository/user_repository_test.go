package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

func newUser(t *testing.T, clk *fixedClock, username string, role entity.Role) *entity.User {
	t.Helper()
	u, err := entity.NewUser(uuid.New(), username, "$2a$10$fakehashfortesting", "Test User", role, clk.Now())
	require.NoError(t, err)
	return u
}

func TestUserCreateAndLookups(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	u := newUser(t, clk, "operator1", entity.RoleNGOPartner)
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "operator1", byID.Username)
	assert.Equal(t, entity.RoleNGOPartner, byID.Role)
	assert.True(t, byID.LastLoginAt.IsZero())

	byName, err := repo.GetByUsername(ctx, "operator1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
}

func TestUserDuplicateUsername(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser(t, clk, "operator1", entity.RoleNGOAdmin)))

	err := repo.Create(ctx, newUser(t, clk, "operator1", entity.RoleStore))
	assert.ErrorIs(t, err, errs.ErrDuplicateUsername)
}

func TestUserUpdate(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	u := newUser(t, clk, "operator1", entity.RoleNGOPartner)
	require.NoError(t, repo.Create(ctx, u))

	email := "ops@example.org"
	suspended := entity.StatusSuspended
	updated, err := repo.Update(ctx, u.ID, persistence.UserUpdate{
		Email:  &email,
		Status: &suspended,
	})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, entity.StatusSuspended, updated.Status)
	assert.False(t, updated.CanLogin())

	empty := ""
	_, err = repo.Update(ctx, u.ID, persistence.UserUpdate{PasswordHash: &empty})
	assert.ErrorIs(t, err, errs.ErrInvalidPassword)
}

func TestUserUpdateAssociationMembership(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	u := newUser(t, clk, "member1", entity.RoleAssociationPartner)
	require.NoError(t, repo.Create(ctx, u))

	assocA := uuid.New()
	_, err := repo.Update(ctx, u.ID, persistence.UserUpdate{AssociationID: &assocA})
	require.NoError(t, err)

	members, err := client.SMembers(ctx, associationUsersKey(assocA)).Result()
	require.NoError(t, err)
	assert.Contains(t, members, u.ID.String())

	// Moving to another association drops the old membership entry
	assocB := uuid.New()
	_, err = repo.Update(ctx, u.ID, persistence.UserUpdate{AssociationID: &assocB})
	require.NoError(t, err)

	oldMembers, err := client.SMembers(ctx, associationUsersKey(assocA)).Result()
	require.NoError(t, err)
	assert.NotContains(t, oldMembers, u.ID.String())
}

func TestUserHardDeleteReconcilesIndexes(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	u := newUser(t, clk, "operator1", entity.RoleStore)
	u.AssociationID = uuid.New()
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	_, err = repo.GetByUsername(ctx, "operator1")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	byRole, err := repo.ListByRole(ctx, entity.RoleStore)
	require.NoError(t, err)
	assert.Empty(t, byRole)

	_, total, err := repo.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// The username is free for re-registration
	require.NoError(t, repo.Create(ctx, newUser(t, clk, "operator1", entity.RoleNGOAdmin)))
}

func TestUserTouchLastLogin(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	u := newUser(t, clk, "operator1", entity.RoleNGOAdmin)
	require.NoError(t, repo.Create(ctx, u))

	loginAt := clk.Now().Add(time.Hour)
	require.NoError(t, repo.TouchLastLogin(ctx, u.ID, loginAt))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.LastLoginAt.Equal(loginAt))

	err = repo.TouchLastLogin(ctx, uuid.New(), loginAt)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestUserListByRole(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewUserRepository(client, clk, testLogger)
	ctx := context.Background()

	admin := newUser(t, clk, "admin1", entity.RoleSystemAdmin)
	require.NoError(t, repo.Create(ctx, admin))
	store1 := newUser(t, clk, "store1", entity.RoleStore)
	require.NoError(t, repo.Create(ctx, store1))
	store2 := newUser(t, clk, "store2", entity.RoleStore)
	require.NoError(t, repo.Create(ctx, store2))

	stores, err := repo.ListByRole(ctx, entity.RoleStore)
	require.NoError(t, err)
	assert.Len(t, stores, 2)

	admins, err := repo.ListByRole(ctx, entity.RoleSystemAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)
}
