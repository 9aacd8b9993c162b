package recipe

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-box/internal/storage"
)

const (
	// StorageKey is the key the recipe snapshot is persisted under.
	StorageKey = "recipe-storage"
	// MaxRecentlyViewed caps the recently viewed history.
	MaxRecentlyViewed = 10

	snapshotVersion = 1
	userIDPrefix    = "user_"
)

// State is the persisted slice of the recipe store.
type State struct {
	Favorites      []string `json:"favorites"`
	RecentlyViewed []string `json:"recently_viewed"`
	UserRecipes    []Recipe `json:"user_recipes"`
}

func defaultState() State {
	return State{Favorites: []string{}, RecentlyViewed: []string{}, UserRecipes: []Recipe{}}
}

func (s State) clone() State {
	c := State{
		Favorites:      slices.Clone(s.Favorites),
		RecentlyViewed: slices.Clone(s.RecentlyViewed),
		UserRecipes:    make([]Recipe, len(s.UserRecipes)),
	}
	for i, r := range s.UserRecipes {
		c.UserRecipes[i] = r.Clone()
	}
	return c
}

// Store owns favorites, the recently viewed history and user-authored recipes.
// Every mutation is persisted before it becomes visible.
type Store struct {
	mu      sync.Mutex
	state   State
	kv      storage.Store
	catalog Catalog
	log     *zap.Logger
	now     func() time.Time
}

// NewStore loads the persisted recipe state from kv.
func NewStore(ctx context.Context, kv storage.Store, catalog Catalog, log *zap.Logger) (*Store, error) {
	log = log.Named("recipe-store")
	state, err := storage.LoadSnapshot(ctx, kv, StorageKey, snapshotVersion, defaultState, log)
	if err != nil {
		return nil, err
	}
	return &Store{state: state, kv: kv, catalog: catalog, log: log, now: time.Now}, nil
}

// commit persists next and swaps it in. Callers hold s.mu.
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

// AddToFavorites appends id to the favorites list.
// It does not check for an existing entry.
func (s *Store) AddToFavorites(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.Favorites = append(next.Favorites, id)
	return s.commit(ctx, next)
}

// RemoveFromFavorites removes every occurrence of id.
func (s *Store) RemoveFromFavorites(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.Favorites = without(next.Favorites, id)
	return s.commit(ctx, next)
}

// IsFavorite reports whether id is in the favorites list.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.Favorites, id)
}

// Favorites returns the favorite ids in the order they were added.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Favorites)
}

// AddToRecentlyViewed moves id to the front of the history, keeping at most MaxRecentlyViewed entries.
func (s *Store) AddToRecentlyViewed(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	viewed := append([]string{id}, without(next.RecentlyViewed, id)...)
	if len(viewed) > MaxRecentlyViewed {
		viewed = viewed[:MaxRecentlyViewed]
	}
	next.RecentlyViewed = viewed
	return s.commit(ctx, next)
}

// RecentlyViewed returns the history, most recent first.
func (s *Store) RecentlyViewed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.RecentlyViewed)
}

// AddUserRecipe stores r under a freshly generated id and returns that id.
// Any id already set on r is ignored.
func (s *Store) AddUserRecipe(ctx context.Context, r Recipe) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r = r.Clone()
	r.ID = s.newID()
	r.UserCreated = true

	next := s.state.clone()
	next.UserRecipes = append(next.UserRecipes, r)
	if err := s.commit(ctx, next); err != nil {
		return "", err
	}

	s.log.Debug("user recipe added", zap.String("id", r.ID), zap.String("title", r.Title))
	return r.ID, nil
}

// newID builds "user_" + base36 millisecond timestamp + a random suffix.
// Collisions are unlikely but not impossible.
func (s *Store) newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return userIDPrefix + strconv.FormatInt(s.now().UnixMilli(), 36) + suffix
}

// UpdateUserRecipe replaces the user recipe with the same id. Unknown ids are ignored.
func (s *Store) UpdateUserRecipe(ctx context.Context, r Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.state.UserRecipes, func(u Recipe) bool { return u.ID == r.ID })
	if i < 0 {
		return nil
	}

	r = r.Clone()
	r.UserCreated = true

	next := s.state.clone()
	next.UserRecipes[i] = r
	return s.commit(ctx, next)
}

// DeleteUserRecipe removes the recipe along with its favorites and history entries.
// Meal plan items pointing at it are left alone.
func (s *Store) DeleteUserRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.UserRecipes = slices.DeleteFunc(next.UserRecipes, func(r Recipe) bool { return r.ID == id })
	next.Favorites = without(next.Favorites, id)
	next.RecentlyViewed = without(next.RecentlyViewed, id)
	return s.commit(ctx, next)
}

// UserRecipes returns copies of the user recipes in creation order.
func (s *Store) UserRecipes() []Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.state.UserRecipes)
}

// UserRecipeByID looks up a user recipe.
func (s *Store) UserRecipeByID(id string) (Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userRecipeByID(id)
}

func (s *Store) userRecipeByID(id string) (Recipe, bool) {
	for _, r := range s.state.UserRecipes {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return Recipe{}, false
}

// GetRecipeByID checks user recipes first, then the catalog.
func (s *Store) GetRecipeByID(id string) (Recipe, bool) {
	s.mu.Lock()
	r, ok := s.userRecipeByID(id)
	s.mu.Unlock()
	if ok {
		return r, true
	}
	return s.catalog.RecipeByID(id)
}

// GetRecipesByCategory returns the catalog recipes of the category followed by the user
// recipes filed under its name. An unknown category yields nothing.
func (s *Store) GetRecipesByCategory(categoryID string) []Recipe {
	category, ok := s.catalog.CategoryByID(categoryID)
	if !ok {
		return nil
	}

	results := s.catalog.RecipesByCategory(categoryID)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.state.UserRecipes {
		if r.Category == category.Name {
			results = append(results, r.Clone())
		}
	}
	return results
}

// SearchRecipes returns catalog matches followed by user recipe matches.
func (s *Store) SearchRecipes(query string) []Recipe {
	results := s.catalog.Search(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.state.UserRecipes {
		if r.Matches(query) {
			results = append(results, r.Clone())
		}
	}
	return results
}

// AllRecipes returns the catalog followed by user recipes.
func (s *Store) AllRecipes() []Recipe {
	results := s.catalog.Recipes()
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(results, cloneAll(s.state.UserRecipes)...)
}

// IsUserRecipeID reports whether id has the user recipe prefix.
func IsUserRecipeID(id string) bool {
	return strings.HasPrefix(id, userIDPrefix)
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

func cloneAll(recipes []Recipe) []Recipe {
	out := make([]Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}
