package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recipe-box/internal/storage"
)

type stubCatalog struct {
	recipes    []Recipe
	categories []Category
}

func (c stubCatalog) RecipeByID(id string) (Recipe, bool) {
	for _, r := range c.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

func (c stubCatalog) Recipes() []Recipe { return append([]Recipe(nil), c.recipes...) }

func (c stubCatalog) RecipesByCategory(categoryID string) []Recipe {
	cat, ok := c.CategoryByID(categoryID)
	if !ok {
		return nil
	}
	var out []Recipe
	for _, r := range c.recipes {
		if r.Category == cat.Name {
			out = append(out, r)
		}
	}
	return out
}

func (c stubCatalog) Search(query string) []Recipe {
	var out []Recipe
	for _, r := range c.recipes {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}

func (c stubCatalog) CategoryByID(id string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

func testCatalog() stubCatalog {
	return stubCatalog{
		recipes: []Recipe{
			{ID: "1", Title: "Avocado Toast", Category: "Breakfast", Tags: []string{"healthy"}},
			{ID: "2", Title: "Tomato Pasta", Category: "Dinner", Ingredients: []Ingredient{{Name: "basil"}}},
		},
		categories: []Category{{ID: "1", Name: "Breakfast"}, {ID: "3", Name: "Dinner"}},
	}
}

func newTestStore(t *testing.T, kv storage.Store) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), kv, testCatalog(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

type failingKV struct{ *storage.MemoryStore }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	require.NoError(t, s.AddToFavorites(ctx, "1"))
	require.NoError(t, s.AddToFavorites(ctx, "2"))
	assert.True(t, s.IsFavorite("1"))
	assert.Equal(t, []string{"1", "2"}, s.Favorites())

	t.Run("DuplicatesAreKept", func(t *testing.T) {
		require.NoError(t, s.AddToFavorites(ctx, "1"))
		assert.Equal(t, []string{"1", "2", "1"}, s.Favorites())
	})

	t.Run("RemoveDropsEveryOccurrence", func(t *testing.T) {
		require.NoError(t, s.RemoveFromFavorites(ctx, "1"))
		assert.False(t, s.IsFavorite("1"))
		assert.Equal(t, []string{"2"}, s.Favorites())
	})

	t.Run("NetEffect", func(t *testing.T) {
		ops := []struct {
			add bool
			id  string
		}{{true, "x"}, {false, "x"}, {true, "x"}, {true, "y"}, {false, "y"}}
		for _, op := range ops {
			if op.add {
				require.NoError(t, s.AddToFavorites(ctx, op.id))
			} else {
				require.NoError(t, s.RemoveFromFavorites(ctx, op.id))
			}
		}
		assert.True(t, s.IsFavorite("x"))
		assert.False(t, s.IsFavorite("y"))
	})
}

func TestRecentlyViewed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddToRecentlyViewed(ctx, id))
	}
	assert.Equal(t, []string{"c", "b", "a"}, s.RecentlyViewed())

	t.Run("ViewingAgainMovesToFront", func(t *testing.T) {
		require.NoError(t, s.AddToRecentlyViewed(ctx, "a"))
		assert.Equal(t, []string{"a", "c", "b"}, s.RecentlyViewed())
	})

	t.Run("CappedAtTen", func(t *testing.T) {
		for i := 0; i < 15; i++ {
			require.NoError(t, s.AddToRecentlyViewed(ctx, fmt.Sprintf("r%d", i)))
		}
		viewed := s.RecentlyViewed()
		assert.Len(t, viewed, MaxRecentlyViewed)
		assert.Equal(t, "r14", viewed[0])
		assert.Equal(t, "r5", viewed[9])
	})
}

func TestUserRecipes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	in := validRecipe()
	in.ID = "ignored"
	id, err := s.AddUserRecipe(ctx, in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "user_"))
	assert.True(t, IsUserRecipeID(id))

	got, ok := s.UserRecipeByID(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.UserCreated)

	t.Run("IDsAreUnique", func(t *testing.T) {
		other, err := s.AddUserRecipe(ctx, validRecipe())
		require.NoError(t, err)
		assert.NotEqual(t, id, other)
		require.NoError(t, s.DeleteUserRecipe(ctx, other))
	})

	t.Run("Update", func(t *testing.T) {
		got.Title = "Crepes"
		require.NoError(t, s.UpdateUserRecipe(ctx, got))
		updated, _ := s.UserRecipeByID(id)
		assert.Equal(t, "Crepes", updated.Title)
	})

	t.Run("UpdateUnknownIsNoop", func(t *testing.T) {
		before := s.UserRecipes()
		require.NoError(t, s.UpdateUserRecipe(ctx, Recipe{ID: "user_missing", Title: "Ghost"}))
		assert.Equal(t, before, s.UserRecipes())
	})

	t.Run("ReturnedCopiesAreIsolated", func(t *testing.T) {
		list := s.UserRecipes()
		list[0].Tags[0] = "mutated"
		again, _ := s.UserRecipeByID(id)
		assert.Equal(t, "sweet", again.Tags[0])
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		require.NoError(t, s.AddToFavorites(ctx, id))
		require.NoError(t, s.AddToRecentlyViewed(ctx, id))
		require.NoError(t, s.AddToRecentlyViewed(ctx, "1"))

		require.NoError(t, s.DeleteUserRecipe(ctx, id))

		_, ok := s.UserRecipeByID(id)
		assert.False(t, ok)
		assert.False(t, s.IsFavorite(id))
		assert.Equal(t, []string{"1"}, s.RecentlyViewed())
		assert.Empty(t, s.UserRecipes())
	})
}

func TestMergedLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	mine := validRecipe()
	mine.Title = "Basil Omelette"
	id, err := s.AddUserRecipe(ctx, mine)
	require.NoError(t, err)

	t.Run("GetRecipeByID", func(t *testing.T) {
		r, ok := s.GetRecipeByID(id)
		require.True(t, ok)
		assert.Equal(t, "Basil Omelette", r.Title)

		r, ok = s.GetRecipeByID("2")
		require.True(t, ok)
		assert.Equal(t, "Tomato Pasta", r.Title)

		_, ok = s.GetRecipeByID("nope")
		assert.False(t, ok)
	})

	t.Run("GetRecipesByCategory", func(t *testing.T) {
		got := s.GetRecipesByCategory("1")
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, id, got[1].ID)

		assert.Empty(t, s.GetRecipesByCategory("99"))
	})

	t.Run("SearchRecipes", func(t *testing.T) {
		got := s.SearchRecipes("BASIL")
		require.Len(t, got, 2)
		assert.Equal(t, "2", got[0].ID)
		assert.Equal(t, id, got[1].ID)
	})

	t.Run("AllRecipes", func(t *testing.T) {
		assert.Len(t, s.AllRecipes(), 3)
	})
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)

	_, err := s.AddUserRecipe(ctx, validRecipe())
	require.NoError(t, err)
	require.NoError(t, s.AddToFavorites(ctx, "1"))
	require.NoError(t, s.AddToRecentlyViewed(ctx, "2"))

	t.Run("RoundTrip", func(t *testing.T) {
		reloaded := newTestStore(t, kv)
		if diff := cmp.Diff(s.Snapshot(), reloaded.Snapshot()); diff != "" {
			t.Errorf("reloaded state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("FailedWriteLeavesStateUntouched", func(t *testing.T) {
		broken := newTestStore(t, failingKV{kv})
		before := broken.Snapshot()

		err := broken.AddToFavorites(ctx, "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Equal(t, before, broken.Snapshot())

		_, err = broken.AddUserRecipe(ctx, validRecipe())
		require.Error(t, err)
		assert.Len(t, broken.UserRecipes(), 1)
	})
}
