package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

type authFixture struct {
	userRepo  *MockUserRepository
	sppgRepo  *MockSppgRepository
	issuer    *MockTokenIssuer
	blacklist *MockTokenBlacklist
	service   *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		userRepo:  new(MockUserRepository),
		sppgRepo:  new(MockSppgRepository),
		issuer:    new(MockTokenIssuer),
		blacklist: new(MockTokenBlacklist),
	}
	f.service = NewAuthService(f.userRepo, f.sppgRepo, f.issuer, f.blacklist, 3, 15*time.Minute)
	return f
}

func activeOrg(t *testing.T) *identity.Sppg {
	t.Helper()
	org, err := identity.NewSppg("SPPG-BDG", "SPPG Bandung")
	require.NoError(t, err)
	return org
}

func activeUser(t *testing.T, tenantID uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser(tenantID, "admin", "s3cretpass", identity.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues tokens on valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		user := activeUser(t, org.TenantID())

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)
		f.userRepo.On("FindByUsername", mock.Anything, org.TenantID(), "admin").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)
		f.issuer.On("Issue", user).Return(&TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
		}, nil)

		resp, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "admin",
			Password: "s3cretpass",
		}, "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, "access", resp.AccessToken)
		assert.Equal(t, "admin", resp.User.Username)
		assert.Equal(t, 0, user.FailedAttempts)
		require.NotNil(t, user.LastLoginAt)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
	})

	t.Run("wrong password counts toward lockout", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		user := activeUser(t, org.TenantID())

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)
		f.userRepo.On("FindByUsername", mock.Anything, org.TenantID(), "admin").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		_, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "admin",
			Password: "wrongpassword",
		}, "10.0.0.1")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, 1, user.FailedAttempts)
		f.issuer.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("third failure locks the account", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		user := activeUser(t, org.TenantID())
		user.FailedAttempts = 2

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)
		f.userRepo.On("FindByUsername", mock.Anything, org.TenantID(), "admin").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		_, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "admin",
			Password: "wrongpassword",
		}, "10.0.0.1")

		require.Error(t, err)
		assert.Equal(t, identity.UserStatusLocked, user.Status)
		require.NotNil(t, user.LockedUntil)
		assert.False(t, user.CanLogin())
	})

	t.Run("locked account is refused before password check", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		user := activeUser(t, org.TenantID())
		user.RecordLoginFailure(1, time.Hour)

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)
		f.userRepo.On("FindByUsername", mock.Anything, org.TenantID(), "admin").Return(user, nil)

		_, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "admin",
			Password: "s3cretpass",
		}, "10.0.0.1")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("expired lock clears on successful login", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		user := activeUser(t, org.TenantID())
		past := time.Now().Add(-time.Minute)
		user.Status = identity.UserStatusLocked
		user.FailedAttempts = 3
		user.LockedUntil = &past

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)
		f.userRepo.On("FindByUsername", mock.Anything, org.TenantID(), "admin").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)
		f.issuer.On("Issue", user).Return(&TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)

		_, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "admin",
			Password: "s3cretpass",
		}, "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusActive, user.Status)
		assert.Nil(t, user.LockedUntil)
	})

	t.Run("suspended organization cannot log in", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		require.NoError(t, org.Suspend())

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)

		_, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "admin",
			Password: "s3cretpass",
		}, "10.0.0.1")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORGANIZATION_INACTIVE", domainErr.Code)
		f.userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown username yields the same generic error", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)

		f.sppgRepo.On("FindByCode", mock.Anything, "SPPG-BDG").Return(org, nil)
		f.userRepo.On("FindByUsername", mock.Anything, org.TenantID(), "ghost").
			Return(nil, shared.NewDomainError("NOT_FOUND", "User not found"))

		_, err := f.service.Login(context.Background(), LoginRequest{
			SppgCode: "SPPG-BDG",
			Username: "ghost",
			Password: "whatever123",
		}, "10.0.0.1")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("rotates the pair and revokes the used refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		org := activeOrg(t)
		user := activeUser(t, org.TenantID())
		expiry := time.Now().Add(time.Hour)

		f.issuer.On("ParseRefresh", "old-refresh").Return(&TokenClaims{
			TokenID:   "jti-1",
			UserID:    user.ID,
			TenantID:  org.TenantID(),
			ExpiresAt: expiry,
		}, nil)
		f.blacklist.On("IsRevoked", mock.Anything, "jti-1").Return(false, nil)
		f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.blacklist.On("Revoke", mock.Anything, "jti-1", expiry).Return(nil)
		f.issuer.On("Issue", user).Return(&TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}, nil)

		resp, err := f.service.Refresh(context.Background(), RefreshRequest{RefreshToken: "old-refresh"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", resp.AccessToken)
		f.blacklist.AssertExpectations(t)
	})

	t.Run("rejects an already revoked refresh token", func(t *testing.T) {
		f := newAuthFixture(t)

		f.issuer.On("ParseRefresh", "old-refresh").Return(&TokenClaims{TokenID: "jti-1"}, nil)
		f.blacklist.On("IsRevoked", mock.Anything, "jti-1").Return(true, nil)

		_, err := f.service.Refresh(context.Background(), RefreshRequest{RefreshToken: "old-refresh"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
		f.issuer.AssertNotCalled(t, "Issue", mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	expiry := time.Now().Add(10 * time.Minute)

	f.blacklist.On("Revoke", mock.Anything, "jti-9", expiry).Return(nil)

	require.NoError(t, f.service.Logout(context.Background(), "jti-9", expiry))
	f.blacklist.AssertExpectations(t)
}
