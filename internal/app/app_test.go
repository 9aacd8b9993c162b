package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"recipe-box/internal/chaos"
	"recipe-box/internal/config"
	"recipe-box/internal/planner"
	"recipe-box/internal/recipe"
	"recipe-box/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := Load(context.Background(), storage.NewMemoryStore(), zaptest.NewLogger(t), Options{
		ChaosOptions: []chaos.Option{chaos.WithRand(rand.New(rand.NewPCG(1, 2)))},
	})
	require.NoError(t, err)
	return a
}

func userRecipe(title string) recipe.Recipe {
	return recipe.Recipe{
		Title:        title,
		Description:  "Test recipe",
		Servings:     2,
		Difficulty:   recipe.DifficultyEasy,
		Ingredients:  []recipe.Ingredient{{Name: "flour", Amount: 1, Unit: "cup"}},
		Instructions: []string{"Mix."},
		Category:     "Dinner",
	}
}

func titles(recipes []recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestViews(t *testing.T) {
	ctx := context.Background()

	t.Run("RecentlyViewedSkipsDeletedRecipes", func(t *testing.T) {
		a := newTestApp(t)
		id, err := a.Recipes.AddUserRecipe(ctx, userRecipe("Temp"))
		require.NoError(t, err)

		_, ok, err := a.ViewRecipe(ctx, "1")
		require.NoError(t, err)
		require.True(t, ok)
		_, ok, err = a.ViewRecipe(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		_, ok, err = a.ViewRecipe(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.Equal(t, []string{"Temp", "Avocado Toast with Poached Eggs"}, titles(a.RecentlyViewed()))

		// Deleting cascades to the history itself.
		require.NoError(t, a.Recipes.DeleteUserRecipe(ctx, id))
		assert.Equal(t, []string{"Avocado Toast with Poached Eggs"}, titles(a.RecentlyViewed()))
	})

	t.Run("FavoriteRecipes", func(t *testing.T) {
		a := newTestApp(t)
		require.NoError(t, a.Recipes.AddToFavorites(ctx, "5"))
		require.NoError(t, a.Recipes.AddToFavorites(ctx, "nope"))
		assert.Equal(t, []string{"Chocolate Chip Cookies"}, titles(a.FavoriteRecipes()))
	})

	t.Run("RecommendedSkipsDanglingUsage", func(t *testing.T) {
		a := newTestApp(t)
		id, err := a.Recipes.AddUserRecipe(ctx, userRecipe("Gone Soon"))
		require.NoError(t, err)

		require.NoError(t, a.PlanMeal(ctx, planner.Monday, planner.Dinner, id))
		require.NoError(t, a.PlanMeal(ctx, planner.Tuesday, planner.Dinner, id))
		require.NoError(t, a.PlanMeal(ctx, planner.Monday, planner.Lunch, "4"))
		require.NoError(t, a.PlanMeal(ctx, planner.Friday, planner.Lunch, "4"))
		require.NoError(t, a.PlanMeal(ctx, planner.Sunday, planner.Lunch, "7"))
		require.NoError(t, a.Recipes.DeleteUserRecipe(ctx, id))

		got := a.Recommended(2)
		assert.Equal(t, []string{"Grilled Chicken Salad", "15-Minute Quesadillas"}, titles(got))
		assert.Empty(t, a.Recommended(0))
	})

	t.Run("PlanMealRejectsUnknownRecipe", func(t *testing.T) {
		a := newTestApp(t)
		assert.Error(t, a.PlanMeal(ctx, planner.Monday, planner.Dinner, "404"))
		assert.ErrorIs(t, a.PlanMeal(ctx, "someday", planner.Dinner, "1"), planner.ErrInvalidDay)
		assert.Empty(t, a.Planner.Items())
	})

	t.Run("WeekPlanFollowsEnabledMealTypes", func(t *testing.T) {
		a := newTestApp(t)
		require.NoError(t, a.PlanMeal(ctx, planner.Monday, planner.Dinner, "2"))
		require.NoError(t, a.PlanMeal(ctx, planner.Monday, planner.Breakfast, "3"))

		week := a.WeekPlan()
		require.Len(t, week, 7)
		monday := week[0]
		assert.Equal(t, planner.Monday, monday.Day)
		require.Len(t, monday.Meals, 2)
		assert.Equal(t, planner.Lunch, monday.Meals[0].MealType)
		assert.Nil(t, monday.Meals[0].Recipe)
		assert.Equal(t, planner.Dinner, monday.Meals[1].MealType)
		require.NotNil(t, monday.Meals[1].Recipe)
		assert.Equal(t, "2", monday.Meals[1].Recipe.ID)
		assert.NotEmpty(t, monday.Meals[1].ItemID)

		require.NoError(t, a.Settings.ToggleMealType(ctx, planner.Breakfast))
		monday = a.WeekPlan()[0]
		require.Len(t, monday.Meals, 3)
		assert.Equal(t, planner.Breakfast, monday.Meals[0].MealType)
		assert.Equal(t, "3", monday.Meals[0].Recipe.ID)
	})

	t.Run("AddPlanToShoppingList", func(t *testing.T) {
		a := newTestApp(t)
		id, err := a.Recipes.AddUserRecipe(ctx, userRecipe("Dangling"))
		require.NoError(t, err)
		require.NoError(t, a.PlanMeal(ctx, planner.Monday, planner.Lunch, "1"))
		require.NoError(t, a.PlanMeal(ctx, planner.Monday, planner.Dinner, "2"))
		require.NoError(t, a.PlanMeal(ctx, planner.Tuesday, planner.Dinner, id))
		require.NoError(t, a.Recipes.DeleteUserRecipe(ctx, id))

		n, err := a.AddPlanToShoppingList(ctx)
		require.NoError(t, err)
		assert.Equal(t, 17, n)
		// "Salt and pepper to taste" and "Red pepper flakes (optional)" appear in both recipes.
		assert.Len(t, a.Shopping.Items(), 15)
	})

	t.Run("AddRecipeToShoppingList", func(t *testing.T) {
		a := newTestApp(t)
		n, err := a.AddRecipeToShoppingList(ctx, "7")
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Len(t, a.Shopping.ActiveItems(), 5)

		_, err = a.AddRecipeToShoppingList(ctx, "404")
		assert.Error(t, err)
	})

	t.Run("ChaosPlan", func(t *testing.T) {
		a := newTestApp(t)
		meals := a.ChaosPlan()
		require.Len(t, meals, 7)
		for i, m := range meals {
			assert.Equal(t, planner.WeekDays[i], m.Day)
			assert.NotEmpty(t, m.Recipe.Title)
			assert.NotEmpty(t, m.Color)
			assert.NotEmpty(t, m.Emoji)
		}
	})
}

const clipPage = `<html><head><script type="application/ld+json">
{"@type": "Recipe", "name": "%s", "recipeIngredient": ["2 cups rice"],
 "recipeInstructions": ["Boil."], "recipeCategory": "%s"}
</script></head><body></body></html>`

func TestImport(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rice":
			fmt.Fprintf(w, clipPage, "Plain Rice", "lunch")
		case "/mystery":
			fmt.Fprintf(w, clipPage, "Mystery Rice", "Side Dish")
		case "/empty":
			fmt.Fprint(w, `<html><body><p>nothing</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Run("ImportRecipe", func(t *testing.T) {
		a := newTestApp(t)
		r, err := a.ImportRecipe(ctx, server.URL+"/rice", "")
		require.NoError(t, err)
		assert.True(t, recipe.IsUserRecipeID(r.ID))
		assert.Equal(t, "Lunch", r.Category)

		stored, ok := a.Recipes.GetRecipeByID(r.ID)
		require.True(t, ok)
		assert.Equal(t, "Plain Rice", stored.Title)
		assert.Contains(t, titles(a.Recipes.GetRecipesByCategory("2")), "Plain Rice")
	})

	t.Run("CategoryOverrideAndDefault", func(t *testing.T) {
		a := newTestApp(t)
		r, err := a.ImportRecipe(ctx, server.URL+"/rice", "desserts")
		require.NoError(t, err)
		assert.Equal(t, "Desserts", r.Category)

		r, err = a.ImportRecipe(ctx, server.URL+"/mystery", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultImportCategory, r.Category)

		_, err = a.ImportRecipe(ctx, server.URL+"/rice", "Brunch")
		assert.Error(t, err)
		assert.Len(t, a.Recipes.UserRecipes(), 2)
	})

	t.Run("ImportRecipesKeepsGoing", func(t *testing.T) {
		a := newTestApp(t)
		urls := []string{server.URL + "/rice", server.URL + "/missing", server.URL + "/empty", server.URL + "/mystery"}
		results := a.ImportRecipes(ctx, urls, "")
		require.Len(t, results, 4)

		assert.NoError(t, results[0].Err)
		assert.Equal(t, "Plain Rice", results[0].Title)
		assert.Error(t, results[1].Err)
		assert.Error(t, results[2].Err)
		assert.NoError(t, results[3].Err)
		for i, res := range results {
			assert.Equal(t, urls[i], res.URL)
		}
		assert.Len(t, a.Recipes.UserRecipes(), 2)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := &config.Config{
		StorageBackend: config.BackendFile,
		DataPath:       filepath.Join(dir, "data"),
		DatabasePath:   filepath.Join(dir, "recipe-box.db"),
		MetricsEnabled: true,
	}

	a, err := New(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, a.Metrics)
	require.NoError(t, a.Recipes.AddToFavorites(ctx, "1"))
	require.NoError(t, a.Shopping.AddItem(ctx, "milk"))

	usage, err := a.Metrics.GetStoreUsage(ctx, 1)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	require.NoError(t, a.Close())

	reopened, err := New(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer reopened.Close()
	assert.True(t, reopened.Recipes.IsFavorite("1"))
	assert.Len(t, reopened.Shopping.Items(), 1)

	t.Run("UnknownBackend", func(t *testing.T) {
		_, err := New(ctx, &config.Config{StorageBackend: "tape"}, zaptest.NewLogger(t))
		assert.Error(t, err)
	})
}
