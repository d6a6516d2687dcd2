package usecase

import (
	"context"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginUser(t *testing.T) {
	newUser := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser("agent@example.com", "secret123", "Agent", domain.RoleUser)
		require.NoError(t, err)
		return user
	}

	t.Run("successful login returns a token", func(t *testing.T) {
		user := newUser(t)
		uc := NewLoginUserUseCase(newFakeUserRepo(user), &fakeTokenService{})

		result, err := uc.Execute(context.Background(), "  Agent@Example.com ", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.False(t, result.Requires2FA)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		user := newUser(t)
		uc := NewLoginUserUseCase(newFakeUserRepo(user), &fakeTokenService{})

		_, errUnknown := uc.Execute(context.Background(), "nobody@example.com", "secret123")
		_, errWrongPass := uc.Execute(context.Background(), "agent@example.com", "wrong")

		assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	})

	t.Run("enabled 2fa withholds the token", func(t *testing.T) {
		user := newUser(t)
		user.TwoFactorEnabled = true
		uc := NewLoginUserUseCase(newFakeUserRepo(user), &fakeTokenService{})

		result, err := uc.Execute(context.Background(), "agent@example.com", "secret123")
		require.NoError(t, err)
		assert.True(t, result.Requires2FA)
		assert.Empty(t, result.Token)
	})
}

func TestVerifyTOTP(t *testing.T) {
	newUserWith2FA := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser("agent@example.com", "secret123", "Agent", domain.RoleUser)
		require.NoError(t, err)
		secret := "SECRET"
		user.TwoFactorEnabled = true
		user.TwoFactorSecret = &secret
		return user
	}

	t.Run("valid code issues a token", func(t *testing.T) {
		user := newUserWith2FA(t)
		uc := NewVerifyTOTPUseCase(newFakeUserRepo(user), &fakeTOTPService{validCode: "123456"}, &fakeTokenService{})

		result, err := uc.Execute(context.Background(), "agent@example.com", "123456")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("invalid code is rejected", func(t *testing.T) {
		user := newUserWith2FA(t)
		uc := NewVerifyTOTPUseCase(newFakeUserRepo(user), &fakeTOTPService{validCode: "123456"}, &fakeTokenService{})

		_, err := uc.Execute(context.Background(), "agent@example.com", "000000")
		assert.ErrorIs(t, err, domain.ErrInvalidTOTPCode)
	})

	t.Run("2fa not configured", func(t *testing.T) {
		user, err := domain.NewUser("agent@example.com", "secret123", "Agent", domain.RoleUser)
		require.NoError(t, err)
		uc := NewVerifyTOTPUseCase(newFakeUserRepo(user), &fakeTOTPService{}, &fakeTokenService{})

		_, err = uc.Execute(context.Background(), "agent@example.com", "123456")
		assert.ErrorIs(t, err, domain.ErrTOTPNotConfigured)
	})
}
