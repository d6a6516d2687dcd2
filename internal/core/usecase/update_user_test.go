package usecase

import (
	"context"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rolePtr(r string) *string { return &r }

func TestUpdateUser(t *testing.T) {
	newAdmin := func(t *testing.T) *domain.User {
		t.Helper()
		admin, err := domain.NewUser("admin@example.com", "secret123", "Admin", domain.RoleAdmin)
		require.NoError(t, err)
		return admin
	}

	t.Run("empty update is rejected", func(t *testing.T) {
		admin := newAdmin(t)
		uc := NewUpdateUserUseCase(newFakeUserRepo(admin), &fakeActivityLog{})

		_, err := uc.Execute(context.Background(), admin.ID, domain.UserUpdate{}, domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("self-demotion is rejected", func(t *testing.T) {
		admin := newAdmin(t)
		uc := NewUpdateUserUseCase(newFakeUserRepo(admin), &fakeActivityLog{})
		actor := domain.Claims{UserID: admin.ID, Role: domain.RoleAdmin}

		_, err := uc.Execute(context.Background(), admin.ID, domain.UserUpdate{Role: rolePtr(domain.RoleUser)}, actor)
		assert.ErrorIs(t, err, domain.ErrSelfModification)
	})

	t.Run("role change for another user succeeds", func(t *testing.T) {
		admin := newAdmin(t)
		target, err := domain.NewUser("agent@example.com", "secret123", "Agent", domain.RoleUser)
		require.NoError(t, err)
		uc := NewUpdateUserUseCase(newFakeUserRepo(admin, target), &fakeActivityLog{})
		actor := domain.Claims{UserID: admin.ID, Role: domain.RoleAdmin}

		updated, err := uc.Execute(context.Background(), target.ID, domain.UserUpdate{Role: rolePtr(domain.RoleAdmin)}, actor)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, updated.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		admin := newAdmin(t)
		uc := NewUpdateUserUseCase(newFakeUserRepo(admin), &fakeActivityLog{})
		actor := domain.Claims{UserID: admin.ID, Role: domain.RoleAdmin}

		_, err := uc.Execute(context.Background(), uuid.New(), domain.UserUpdate{Role: rolePtr(domain.RoleUser)}, actor)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	admin, err := domain.NewUser("admin@example.com", "secret123", "Admin", domain.RoleAdmin)
	require.NoError(t, err)
	target, err := domain.NewUser("agent@example.com", "secret123", "Agent", domain.RoleUser)
	require.NoError(t, err)

	t.Run("self-deletion is rejected", func(t *testing.T) {
		uc := NewDeleteUserUseCase(newFakeUserRepo(admin), &fakeActivityLog{})
		actor := domain.Claims{UserID: admin.ID, Role: domain.RoleAdmin}

		err := uc.Execute(context.Background(), admin.ID, actor)
		assert.ErrorIs(t, err, domain.ErrSelfModification)
	})

	t.Run("deletes another user and records activity", func(t *testing.T) {
		repo := newFakeUserRepo(admin, target)
		activity := &fakeActivityLog{}
		uc := NewDeleteUserUseCase(repo, activity)
		actor := domain.Claims{UserID: admin.ID, Role: domain.RoleAdmin}

		require.NoError(t, uc.Execute(context.Background(), target.ID, actor))
		assert.Nil(t, repo.byID[target.ID])
		require.Len(t, activity.entries, 1)
		assert.Equal(t, "user_deleted", activity.entries[0].Action)
	})
}
