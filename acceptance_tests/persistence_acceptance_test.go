package acceptance_tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"recipe-box/internal/app"
	"recipe-box/internal/chaos"
	"recipe-box/internal/planner"
	"recipe-box/internal/recipe"
	"recipe-box/internal/settings"
	"recipe-box/internal/shopping"
	"recipe-box/internal/storage"
)

const recipePage = `<html><head><script type="application/ld+json">
{"@type": "Recipe", "name": "Lemon Rice", "description": "Bright and quick.",
 "prepTime": "PT5M", "cookTime": "PT20M", "recipeYield": "4 servings",
 "recipeIngredient": ["1 cup basmati rice", "1 lemon", "2 tbsp butter"],
 "recipeInstructions": [{"@type": "HowToStep", "text": "Cook the rice."}, {"@type": "HowToStep", "text": "Stir in lemon and butter."}],
 "recipeCategory": "Lunch"}
</script></head><body></body></html>`

func loadApp(t *testing.T, kv storage.Store) *app.App {
	t.Helper()
	a, err := app.Load(context.Background(), kv, zaptest.NewLogger(t), app.Options{})
	if err != nil {
		t.Fatalf("Failed to load app: %v", err)
	}
	return a
}

func snapshotWritten(t *testing.T, kv storage.Store, key string) bool {
	t.Helper()
	blob, err := kv.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", key, err)
	}
	return blob != nil
}

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, recipePage)
	}))
	defer server.Close()

	// 1. Set up a file backend in a temporary directory
	dataDir := t.TempDir()
	kv, err := storage.NewFileStore(dataDir)
	if err != nil {
		t.Fatalf("Failed to create FileStore: %v", err)
	}
	application := loadApp(t, kv)

	// --- 2. Step 1: Import a recipe ---
	t.Log("--- Step 1: Importing a recipe ---")
	imported, err := application.ImportRecipe(ctx, server.URL+"/lemon-rice", "")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !snapshotWritten(t, kv, recipe.StorageKey) {
		t.Errorf("Expected the recipe snapshot to be written")
	}

	// --- 3. Step 2: Plan, favorite and shop ---
	t.Log("--- Step 2: Planning the week ---")
	steps := []error{
		application.PlanMeal(ctx, planner.Monday, planner.Lunch, imported.ID),
		application.PlanMeal(ctx, planner.Tuesday, planner.Dinner, "8"),
		application.PlanMeal(ctx, planner.Friday, planner.Lunch, imported.ID),
		application.Recipes.AddToFavorites(ctx, imported.ID),
		application.Settings.ToggleDarkMode(ctx),
		application.Chaos.IncrementSecretTapCount(ctx),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}
	if _, err := application.AddPlanToShoppingList(ctx); err != nil {
		t.Fatalf("Adding plan to shopping list failed: %v", err)
	}
	first, _ := application.Shopping.ItemByPosition(1)
	if err := application.Shopping.ToggleItem(ctx, first.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	for _, key := range []string{settings.StorageKey, shopping.StorageKey, planner.StorageKey, chaos.StorageKey} {
		if !snapshotWritten(t, kv, key) {
			t.Errorf("Expected snapshot %s to be written", key)
		}
	}

	// --- 4. Step 3: Restart and verify everything came back ---
	t.Log("--- Step 3: Reloading from disk ---")
	reloaded := loadApp(t, kv)

	if got := reloaded.Recommended(1); len(got) != 1 || got[0].ID != imported.ID {
		t.Errorf("Expected %s to be the top recommendation, got %+v", imported.ID, got)
	}
	if !reloaded.Recipes.IsFavorite(imported.ID) {
		t.Error("Expected the imported recipe to still be a favorite")
	}
	if !reloaded.Settings.Settings().DarkMode {
		t.Error("Expected dark mode to survive the restart")
	}
	if got := reloaded.Chaos.State().SecretTapCount; got != 1 {
		t.Errorf("Expected 1 secret tap, got %d", got)
	}
	if got, want := reloaded.Shopping.Items(), application.Shopping.Items(); len(got) != len(want) || !got[0].Completed {
		t.Errorf("Expected the shopping list to survive the restart, got %+v", got)
	}
	monday := reloaded.WeekPlan()[0]
	if monday.Meals[0].Recipe == nil || monday.Meals[0].Recipe.Title != "Lemon Rice" {
		t.Errorf("Expected Lemon Rice for Monday lunch, got %+v", monday.Meals[0])
	}

	// --- 5. Step 4: Deleting the recipe leaves the plan dangling but usable ---
	t.Log("--- Step 4: Deleting the imported recipe ---")
	if err := reloaded.Recipes.DeleteUserRecipe(ctx, imported.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := reloaded.Recommended(5); len(got) != 1 || got[0].ID != "8" {
		t.Errorf("Expected only the burger to be recommended, got %+v", got)
	}
	if reloaded.WeekPlan()[0].Meals[0].Recipe != nil {
		t.Error("Expected the dangling Monday lunch to resolve to nothing")
	}
}

func TestCorruptedSnapshotsFallBackToDefaults(t *testing.T) {
	dataDir := t.TempDir()
	kv, err := storage.NewFileStore(dataDir)
	if err != nil {
		t.Fatalf("Failed to create FileStore: %v", err)
	}

	// Garbage on disk, as left by an interrupted or foreign writer.
	for key, content := range map[string]string{
		settings.StorageKey: "{not json",
		shopping.StorageKey: `{"version": 99, "state": {"items": [{"id": "x", "name": "ghost"}]}}`,
	} {
		path := filepath.Join(dataDir, key+".json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to seed %s: %v", path, err)
		}
	}

	application := loadApp(t, kv)
	if got := application.Settings.Settings(); len(got.EnabledMealTypes) != 2 || !got.NotificationsEnabled {
		t.Errorf("Expected default settings, got %+v", got)
	}
	if got := application.Shopping.Items(); len(got) != 0 {
		t.Errorf("Expected an empty shopping list, got %+v", got)
	}

	// The next write replaces the corrupted blob.
	if err := application.Shopping.AddItem(context.Background(), "bread"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if got := loadApp(t, kv).Shopping.Items(); len(got) != 1 || got[0].Name != "bread" {
		t.Errorf("Expected the repaired list to persist, got %+v", got)
	}
}
