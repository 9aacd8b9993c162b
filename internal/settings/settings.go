// Package settings stores the user's preferences.
package settings

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"recipe-box/internal/planner"
	"recipe-box/internal/storage"
)

const (
	// StorageKey is the key the settings snapshot is persisted under.
	StorageKey = "settings-storage"

	snapshotVersion = 1
)

// Settings are the user's preferences.
type Settings struct {
	EnabledMealTypes     []planner.MealType `json:"enabled_meal_types"`
	ShowRecipeImages     bool               `json:"show_recipe_images"`
	DarkMode             bool               `json:"dark_mode"`
	NotificationsEnabled bool               `json:"notifications_enabled"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		EnabledMealTypes:     []planner.MealType{planner.Lunch, planner.Dinner},
		ShowRecipeImages:     true,
		DarkMode:             false,
		NotificationsEnabled: true,
	}
}

func (s Settings) clone() Settings {
	s.EnabledMealTypes = slices.Clone(s.EnabledMealTypes)
	return s
}

// Store owns the settings. The set of enabled meal types is never empty.
type Store struct {
	mu       sync.Mutex
	settings Settings
	kv       storage.Store
	log      *zap.Logger
}

// NewStore loads the persisted settings from kv.
func NewStore(ctx context.Context, kv storage.Store, log *zap.Logger) (*Store, error) {
	log = log.Named("settings-store")
	settings, err := storage.LoadSnapshot(ctx, kv, StorageKey, snapshotVersion, Defaults, log)
	if err != nil {
		return nil, err
	}
	if repaired := repairMealTypes(settings.EnabledMealTypes); !slices.Equal(repaired, settings.EnabledMealTypes) {
		log.Warn("repaired stored meal types",
			zap.Any("stored", settings.EnabledMealTypes),
			zap.Any("repaired", repaired))
		settings.EnabledMealTypes = repaired
	}
	return &Store{settings: settings, kv: kv, log: log}, nil
}

// repairMealTypes drops unknown and repeated meal types, falling back to the defaults when none remain.
func repairMealTypes(types []planner.MealType) []planner.MealType {
	out := make([]planner.MealType, 0, len(types))
	for _, m := range types {
		if m.Valid() && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return Defaults().EnabledMealTypes
	}
	return out
}

func (s *Store) commit(ctx context.Context, next Settings) error {
	if err := storage.SaveSnapshot(ctx, s.kv, StorageKey, snapshotVersion, next); err != nil {
		return err
	}
	s.settings = next
	return nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.clone()
}

// IsMealTypeEnabled reports whether the meal type is shown in the planner.
func (s *Store) IsMealTypeEnabled(mealType planner.MealType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.settings.EnabledMealTypes, mealType)
}

// ToggleMealType enables or disables a meal type. Disabling the last enabled type does nothing.
func (s *Store) ToggleMealType(ctx context.Context, mealType planner.MealType) error {
	if !mealType.Valid() {
		return fmt.Errorf("%w: %q", planner.ErrInvalidMealType, mealType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.clone()
	if slices.Contains(next.EnabledMealTypes, mealType) {
		if len(next.EnabledMealTypes) == 1 {
			s.log.Debug("refusing to disable the last meal type", zap.String("meal_type", string(mealType)))
			return nil
		}
		next.EnabledMealTypes = slices.DeleteFunc(next.EnabledMealTypes, func(m planner.MealType) bool {
			return m == mealType
		})
	} else {
		next.EnabledMealTypes = append(next.EnabledMealTypes, mealType)
	}
	return s.commit(ctx, next)
}

// ToggleShowRecipeImages flips whether recipe images are shown.
func (s *Store) ToggleShowRecipeImages(ctx context.Context) error {
	return s.update(ctx, func(next *Settings) { next.ShowRecipeImages = !next.ShowRecipeImages })
}

// ToggleDarkMode flips the color scheme.
func (s *Store) ToggleDarkMode(ctx context.Context) error {
	return s.update(ctx, func(next *Settings) { next.DarkMode = !next.DarkMode })
}

// ToggleNotifications flips whether notifications are sent.
func (s *Store) ToggleNotifications(ctx context.Context) error {
	return s.update(ctx, func(next *Settings) { next.NotificationsEnabled = !next.NotificationsEnabled })
}

func (s *Store) update(ctx context.Context, fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.clone()
	fn(&next)
	return s.commit(ctx, next)
}
