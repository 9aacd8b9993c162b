package planner

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-box/internal/storage"
)

const (
	// StorageKey is the key the meal plan snapshot is persisted under.
	StorageKey = "meal-plan-storage"

	snapshotVersion = 1
)

// State is the persisted slice of the meal plan store.
type State struct {
	Items []Item           `json:"items"`
	Usage map[string]Usage `json:"usage"`
}

func defaultState() State {
	return State{Items: []Item{}, Usage: map[string]Usage{}}
}

func (s State) clone() State {
	c := State{Items: slices.Clone(s.Items), Usage: maps.Clone(s.Usage)}
	if c.Usage == nil {
		c.Usage = map[string]Usage{}
	}
	return c
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the weekly plan and the recipe usage history.
type Store struct {
	mu    sync.Mutex
	state State
	kv    storage.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewStore loads the persisted meal plan from kv.
func NewStore(ctx context.Context, kv storage.Store, log *zap.Logger, opts ...Option) (*Store, error) {
	log = log.Named("meal-plan-store")
	state, err := storage.LoadSnapshot(ctx, kv, StorageKey, snapshotVersion, defaultState, log)
	if err != nil {
		return nil, err
	}
	s := &Store{state: state.clone(), kv: kv, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) commit(ctx context.Context, next State) error {
	if err := storage.SaveSnapshot(ctx, s.kv, StorageKey, snapshotVersion, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func validate(day WeekDay, mealType MealType) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	if !mealType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMealType, mealType)
	}
	return nil
}

// AddMeal puts recipeID into the slot, replacing whatever was there, and records one more use
// of recipeID. Both changes are persisted as a single snapshot.
func (s *Store) AddMeal(ctx context.Context, day WeekDay, mealType MealType, recipeID string) error {
	if err := validate(day, mealType); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.Items = slices.DeleteFunc(next.Items, func(it Item) bool {
		return it.Day == day && it.MealType == mealType
	})
	next.Items = append(next.Items, Item{
		ID:       uuid.NewString(),
		Day:      day,
		MealType: mealType,
		RecipeID: recipeID,
	})

	usage := next.Usage[recipeID]
	usage.Count++
	usage.LastUsed = s.now().UTC()
	next.Usage[recipeID] = usage

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.Debug("meal added",
		zap.String("day", string(day)),
		zap.String("meal_type", string(mealType)),
		zap.String("recipe_id", recipeID),
		zap.Int("usage", usage.Count))
	return nil
}

// RemoveMeal empties the slot. Usage counts are not touched.
func (s *Store) RemoveMeal(ctx context.Context, day WeekDay, mealType MealType) error {
	if err := validate(day, mealType); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.Items = slices.DeleteFunc(next.Items, func(it Item) bool {
		return it.Day == day && it.MealType == mealType
	})
	return s.commit(ctx, next)
}

// ClearMealPlan empties every slot. Usage history is kept.
func (s *Store) ClearMealPlan(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.Items = []Item{}
	return s.commit(ctx, next)
}

// Items returns the plan items in the order they were added.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Items)
}

// Item returns the item planned for the slot.
func (s *Store) Item(day WeekDay, mealType MealType) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.state.Items {
		if it.Day == day && it.MealType == mealType {
			return it, true
		}
	}
	return Item{}, false
}

// Grid maps day to meal type to recipe id. Days without meals are absent.
func (s *Store) Grid() map[WeekDay]map[MealType]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := make(map[WeekDay]map[MealType]string)
	for _, it := range s.state.Items {
		if grid[it.Day] == nil {
			grid[it.Day] = make(map[MealType]string)
		}
		grid[it.Day][it.MealType] = it.RecipeID
	}
	return grid
}

// Usage returns the usage record of recipeID.
func (s *Store) Usage(recipeID string) (Usage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.Usage[recipeID]
	return u, ok
}
