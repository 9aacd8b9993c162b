package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-box/internal/recipe"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Recipes(), 8)
	assert.Len(t, c.Categories(), 6)

	t.Run("BuiltInsAreValid", func(t *testing.T) {
		for _, r := range c.Recipes() {
			assert.NoError(t, recipe.Validate(r), r.Title)
			_, ok := c.CategoryByName(r.Category)
			assert.True(t, ok, "recipe %s has unknown category %q", r.ID, r.Category)
		}
	})

	t.Run("StructuredIngredients", func(t *testing.T) {
		r, ok := c.RecipeByID("5")
		require.True(t, ok)
		assert.Equal(t, recipe.Ingredient{Name: "all-purpose flour", Amount: 2.25, Unit: "cup"}, r.Ingredients[0])
	})
}

func TestQueries(t *testing.T) {
	c := MustLoad()

	t.Run("RecipeByID", func(t *testing.T) {
		r, ok := c.RecipeByID("1")
		require.True(t, ok)
		assert.Equal(t, "Avocado Toast with Poached Eggs", r.Title)

		_, ok = c.RecipeByID("42")
		assert.False(t, ok)
	})

	t.Run("RecipesByCategory", func(t *testing.T) {
		breakfast := c.RecipesByCategory("1")
		require.Len(t, breakfast, 2)
		assert.Equal(t, "1", breakfast[0].ID)
		assert.Equal(t, "3", breakfast[1].ID)

		assert.Empty(t, c.RecipesByCategory("99"))
	})

	t.Run("Search", func(t *testing.T) {
		ids := func(rs []recipe.Recipe) []string {
			var out []string
			for _, r := range rs {
				out = append(out, r.ID)
			}
			return out
		}
		assert.Equal(t, []string{"2"}, ids(c.Search("BASIL")))
		assert.Equal(t, []string{"1", "3", "6", "7"}, ids(c.Search("quick")))
		assert.Empty(t, c.Search("sushi"))
	})

	t.Run("Featured", func(t *testing.T) {
		var ids []string
		for _, r := range c.Featured() {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"1", "2", "6"}, ids)
	})

	t.Run("CategoryByName", func(t *testing.T) {
		cat, ok := c.CategoryByName("quick & easy")
		require.True(t, ok)
		assert.Equal(t, "6", cat.ID)
	})

	t.Run("CopiesAreIsolated", func(t *testing.T) {
		r, _ := c.RecipeByID("1")
		r.Tags[0] = "mutated"
		again, _ := c.RecipeByID("1")
		assert.Equal(t, "healthy", again.Tags[0])
	})
}

func TestIDs(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, c.RecipeIDs())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, c.CategoryIDs())
}
