package service

import (
	"context"
	"fmt"
	"time"

	"attendance/internal/auth"
	"attendance/internal/identity"
	"attendance/internal/middleware"
	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// DTOs for request validation
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// MeResponse is the resolved caller: profile plus the permission set the
// evaluator derives from its role.
type MeResponse struct {
	Profile     *model.User        `json:"profile"`
	Role        string             `json:"role"`
	Permissions rbac.PermissionSet `json:"permissions"`
}

// AuthService drives sign-in, token refresh and sign-out against the auth
// store, and feeds every transition to the identity resolver.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context)
	Me(ctx context.Context, email string) (*MeResponse, error)
}

type authService struct {
	store    *auth.Store
	users    repository.UserRepository
	resolver *identity.Resolver
	secret   []byte
}

func NewAuthService(store *auth.Store, users repository.UserRepository, resolver *identity.Resolver, secret []byte) AuthService {
	return &authService{store: store, users: users, resolver: resolver, secret: secret}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	ident, err := s.store.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// The role claim comes from the profile when one resolves; the identity
	// metadata is the fallback so a late-resolving profile still signs in
	// with sane (low) privileges.
	roleName := ident.RoleMetadata
	if profile, profErr := s.users.GetActiveByEmail(ctx, ident.Email); profErr == nil {
		roleName = profile.Role
	}
	role := rbac.ParseRole(roleName)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ident.ID.String(),
		"email": ident.Email,
		"role":  role.String(),
		"exp":   time.Now().Add(middleware.AccessTokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refresh := uuid.NewString()
	if err := s.store.IssueRefreshToken(ctx, ident.ID, refresh, refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.resolver.OnAuthChange(ctx, &identity.Session{
		UserID: ident.ID,
		Email:  ident.Email,
		Token:  refresh,
	})

	return &TokenResponse{Token: tokenString, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	rt, err := s.store.LookupRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	ident, err := s.store.GetIdentityByID(ctx, rt.IdentityID)
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	roleName := ident.RoleMetadata
	if profile, profErr := s.users.GetActiveByEmail(ctx, ident.Email); profErr == nil {
		roleName = profile.Role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ident.ID.String(),
		"email": ident.Email,
		"role":  rbac.ParseRole(roleName).String(),
		"exp":   time.Now().Add(middleware.AccessTokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenResponse{Token: tokenString, RefreshToken: refreshToken}, nil
}

// Logout clears local session state immediately; remote invalidation is
// fire-and-forget inside the resolver.
func (s *authService) Logout(ctx context.Context) {
	s.resolver.SignOut(ctx)
}

func (s *authService) Me(ctx context.Context, email string) (*MeResponse, error) {
	profile, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoProfile, email)
	}

	role := rbac.ParseRole(profile.Role)
	return &MeResponse{
		Profile:     profile,
		Role:        role.String(),
		Permissions: rbac.Evaluate(role),
	}, nil
}
