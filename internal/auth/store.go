package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Store is the auth collaborator: it owns login identities (credentials plus
// app-level role metadata) and refresh tokens. Profiles live elsewhere; the
// two are linked by the identity UUID.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateIdentity registers a confirmed login identity with a bcrypt-hashed
// password.
func (s *Store) CreateIdentity(ctx context.Context, email, password string) (*model.LoginIdentity, error) {
	var existing model.LoginIdentity
	if err := s.db.WithContext(ctx).First(&existing, "email = ?", email).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &model.LoginIdentity{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hashed),
		EmailConfirmed: true,
	}
	if err := s.db.WithContext(ctx).Create(identity).Error; err != nil {
		return nil, err
	}
	return identity, nil
}

// UpdateRoleMetadata stamps the app-level role on an identity.
func (s *Store) UpdateRoleMetadata(ctx context.Context, id uuid.UUID, role string) error {
	return s.db.WithContext(ctx).Model(&model.LoginIdentity{}).
		Where("id = ?", id).
		Update("role_metadata", role).Error
}

// DeleteIdentity removes a login identity and its refresh tokens. Used as
// the compensating action when profile creation fails after the identity
// was already registered.
func (s *Store) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("identity_id = ?", id).Delete(&model.RefreshToken{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LoginIdentity{}).Error
}

// Authenticate verifies a credential pair. The same error covers unknown
// email and wrong password.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*model.LoginIdentity, error) {
	var identity model.LoginIdentity
	if err := s.db.WithContext(ctx).First(&identity, "email = ?", email).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &identity, nil
}

// GetIdentityByID fetches a login identity by its UUID.
func (s *Store) GetIdentityByID(ctx context.Context, id uuid.UUID) (*model.LoginIdentity, error) {
	var identity model.LoginIdentity
	if err := s.db.WithContext(ctx).First(&identity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// IssueRefreshToken stores a new long-lived token for an identity.
func (s *Store) IssueRefreshToken(ctx context.Context, identityID uuid.UUID, token string, ttl time.Duration) error {
	rt := &model.RefreshToken{
		IdentityID: identityID,
		Token:      token,
		ExpiresAt:  time.Now().Add(ttl),
	}
	return s.db.WithContext(ctx).Create(rt).Error
}

// LookupRefreshToken returns the stored token if present and unexpired.
func (s *Store) LookupRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := s.db.WithContext(ctx).First(&rt, "token = ?", token).Error; err != nil {
		return nil, err
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}

// Invalidate removes a refresh token, ending the remote session. Satisfies
// identity.SessionInvalidator.
func (s *Store) Invalidate(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&model.RefreshToken{}).Error
}
