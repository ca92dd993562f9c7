package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// TokenPair is an access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims is the parsed content of a token
type TokenClaims struct {
	TokenID   string
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Username  string
	Role      string
	ExpiresAt time.Time
}

// TokenIssuer signs and parses tokens
type TokenIssuer interface {
	Issue(user *identity.User) (*TokenPair, error)
	ParseRefresh(token string) (*TokenClaims, error)
}

// TokenBlacklist revokes tokens before their natural expiry
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService authenticates users and manages their sessions
type AuthService struct {
	userRepo     identity.UserRepository
	sppgRepo     identity.SppgRepository
	issuer       TokenIssuer
	blacklist    TokenBlacklist
	maxAttempts  int
	lockDuration time.Duration
}

// NewAuthService creates an AuthService
func NewAuthService(userRepo identity.UserRepository, sppgRepo identity.SppgRepository, issuer TokenIssuer, blacklist TokenBlacklist, maxAttempts int, lockDuration time.Duration) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockDuration <= 0 {
		lockDuration = 30 * time.Minute
	}
	return &AuthService{
		userRepo:     userRepo,
		sppgRepo:     sppgRepo,
		issuer:       issuer,
		blacklist:    blacklist,
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// Login authenticates a user within one organization. Failed attempts count
// toward the lockout; the error message never reveals which part was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error) {
	org, err := s.sppgRepo.FindByCode(ctx, req.SppgCode)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if !org.IsActive() {
		return nil, shared.NewDomainError("ORGANIZATION_INACTIVE", "Organization is not active")
	}

	user, err := s.userRepo.FindByUsername(ctx, org.TenantID(), req.Username)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked or deactivated")
	}
	if user.Status == identity.UserStatusLocked {
		// Lock expired, CanLogin already verified that
		user.Unlock()
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordLoginFailure(s.maxAttempts, s.lockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
		return nil, errInvalidCredentials
	}

	user.RecordLoginSuccess(clientIP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         *toUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair and revokes the old
// one, so each refresh token works exactly once.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.issuer.ParseRefresh(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked or deactivated")
	}

	if err := s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return nil, err
	}
	pair, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         *toUserResponse(user),
	}, nil
}

// Logout revokes the presented access token until its natural expiry
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.blacklist.Revoke(ctx, tokenID, expiresAt)
}
