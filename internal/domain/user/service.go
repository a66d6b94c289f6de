package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/example/artisan-market/internal/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence boundary for user accounts. GetByEmail returns
// ErrUserNotFound when no account matches.
type Store interface {
	Insert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With(zap.String("component", "user")),
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password, name string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if role != RoleArtisan && role != RoleBuyer {
		return nil, ErrInvalidRole
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("role", string(role)))
	return u, nil
}

// Authenticate verifies email/password and that the account is active.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrAccountDisabled
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.GetByID(ctx, id)
}

const maxBioLen = 500

// ProfileInput carries optional profile updates; nil pointers leave the
// field unchanged.
type ProfileInput struct {
	Name   *string
	Bio    *string
	Craft  *string
	Region *string
}

// UpdateProfile edits the caller's own display name and artisan story.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrNameRequired
		}
		u.Name = *in.Name
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, ErrBioTooLong
		}
		u.Bio = *in.Bio
	}
	if in.Craft != nil {
		u.Craft = *in.Craft
	}
	if in.Region != nil {
		u.Region = *in.Region
	}

	u.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", userID))
	return u, nil
}

// GetArtisan returns an artisan account for the public profile page.
// Deactivated accounts and buyers are indistinguishable from missing ones.
func (s *Service) GetArtisan(ctx context.Context, id string) (*User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleArtisan || !u.Active {
		return nil, ErrUserNotFound
	}
	return u, nil
}
