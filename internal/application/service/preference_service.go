package service

import (
	"context"
	"encoding/json"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"go.uber.org/zap"
)

// Persisted preference keys.
const (
	PrefCurrentUser     = "currentUser"
	PrefConfig          = "config"
	PrefRolePermissions = "rolePermissions"
	PrefDarkMode        = "darkMode"
)

// Role names used by the seeded profiles.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
	RoleKitchen = "kitchen"
)

// Permission areas checked by the advisory role middleware.
const (
	PermPOS       = "pos"
	PermKitchen   = "kitchen"
	PermInventory = "inventory"
	PermStaff     = "staff"
	PermReports   = "reports"
	PermSettings  = "settings"
)

// RolePermissions maps a role to the areas it may open.
type RolePermissions map[string][]string

// Allows reports whether role may open area. Unknown roles may not.
func (rp RolePermissions) Allows(role, area string) bool {
	for _, a := range rp[role] {
		if a == area || a == "*" {
			return true
		}
	}
	return false
}

// DefaultRolePermissions is used until the operator saves their own.
func DefaultRolePermissions() RolePermissions {
	return RolePermissions{
		RoleAdmin:   {"*"},
		RoleCashier: {PermPOS, PermKitchen},
		RoleKitchen: {PermKitchen},
	}
}

// PreferenceService stores the front-end state as JSON documents.
type PreferenceService struct {
	repo     repository.PreferenceRepository
	log      *zap.Logger
	defaults map[string]any
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(repo repository.PreferenceRepository, store StoreSettings, log *zap.Logger) *PreferenceService {
	return &PreferenceService{
		repo: repo,
		log:  log,
		defaults: map[string]any{
			PrefCurrentUser: nil,
			PrefConfig: map[string]any{
				"businessName": store.BusinessName,
				"currency":     store.Currency,
				"terminalId":   store.TerminalID,
			},
			PrefRolePermissions: DefaultRolePermissions(),
			PrefDarkMode:        false,
		},
	}
}

// IsKnownKey reports whether key is one of the persisted preference keys.
func (s *PreferenceService) IsKnownKey(key string) bool {
	_, ok := s.defaults[key]
	return ok
}

// Get returns the stored document of key. A missing or corrupt value
// yields the key's default; corruption is logged and never returned.
func (s *PreferenceService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if !s.IsKnownKey(key) {
		return nil, apperror.NewNotFoundError("Preference " + key)
	}

	pref, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if pref != nil && json.Valid([]byte(pref.Value)) {
		return json.RawMessage(pref.Value), nil
	}
	if pref != nil {
		s.log.Warn("corrupt preference, using default", zap.String("key", key))
	}
	return json.Marshal(s.defaults[key])
}

// Load decodes key into dst, falling back to the default on bad JSON.
func (s *PreferenceService) Load(ctx context.Context, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("preference does not match its type, using default",
			zap.String("key", key), zap.Error(err))
		def, _ := json.Marshal(s.defaults[key])
		return json.Unmarshal(def, dst)
	}
	return nil
}

// Save replaces the document of key.
func (s *PreferenceService) Save(ctx context.Context, key string, value json.RawMessage) error {
	if !s.IsKnownKey(key) {
		return apperror.NewNotFoundError("Preference " + key)
	}
	if !json.Valid(value) {
		return apperror.NewFieldError("value", "must be valid JSON")
	}
	return s.repo.Upsert(ctx, &entity.Preference{Key: key, Value: string(value)})
}

// RolePermissions returns the saved role map, or the default one.
func (s *PreferenceService) RolePermissions(ctx context.Context) RolePermissions {
	var rp RolePermissions
	if err := s.Load(ctx, PrefRolePermissions, &rp); err != nil || len(rp) == 0 {
		return DefaultRolePermissions()
	}
	return rp
}
