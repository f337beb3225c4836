package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// ProfileService lists the lock-screen profiles and unlocks the terminal.
type ProfileService struct {
	profiles    repository.ProfileRepository
	preferences *PreferenceService
	jwtManager  *utils.JWTManager
}

// NewProfileService creates a new profile service
func NewProfileService(
	profiles repository.ProfileRepository,
	preferences *PreferenceService,
	jwtManager *utils.JWTManager,
) *ProfileService {
	return &ProfileService{
		profiles:    profiles,
		preferences: preferences,
		jwtManager:  jwtManager,
	}
}

// ListProfiles returns the active profiles
func (s *ProfileService) ListProfiles(ctx context.Context) ([]entity.Profile, error) {
	return s.profiles.ListActive(ctx)
}

// CreateProfileInput represents the create profile input
type CreateProfileInput struct {
	Name string
	Role string
	// Pin is optional; when set the lock screen asks for it.
	Pin string
}

// CreateProfile adds a profile. The PIN is stored as a bcrypt hash.
func (s *ProfileService) CreateProfile(ctx context.Context, input *CreateProfileInput) (*entity.Profile, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = RoleCashier
	}

	profile := &entity.Profile{Name: name, Role: role, Active: true}
	if input.Pin != "" {
		if len(input.Pin) < 4 {
			return nil, apperror.NewFieldError("pin", "must be at least 4 digits")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		profile.PinHash = string(hash)
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UnlockResult is the token issued when a profile unlocks the terminal.
type UnlockResult struct {
	Token       string          `json:"token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Profile     *entity.Profile `json:"profile"`
	Permissions []string        `json:"permissions"`
}

// Unlock selects a profile on the lock screen. Profiles without a PIN
// unlock directly.
func (s *ProfileService) Unlock(ctx context.Context, profileID uuid.UUID, pin string) (*UnlockResult, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.Active {
		return nil, apperror.NewNotFoundError("Profile")
	}
	if profile.HasPin() {
		if err := bcrypt.CompareHashAndPassword([]byte(profile.PinHash), []byte(pin)); err != nil {
			return nil, ErrInvalidPin
		}
	}

	token, expiresAt, err := s.jwtManager.Generate(profile.ID, profile.Name, profile.Role)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}

	permissions := s.preferences.RolePermissions(ctx)[profile.Role]
	if permissions == nil {
		permissions = []string{}
	}
	return &UnlockResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		Profile:     profile,
		Permissions: permissions,
	}, nil
}
