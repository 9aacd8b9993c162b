package app

import (
	"context"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"recipe-box/internal/planner"
	"recipe-box/internal/recipe"
)

// PlannedMeal is one slot of the weekly plan. Recipe is nil when the slot is empty
// or points at a recipe that no longer exists.
type PlannedMeal struct {
	MealType planner.MealType
	ItemID   string
	Recipe   *recipe.Recipe
}

// DayPlan holds the enabled meal slots of one day.
type DayPlan struct {
	Day   planner.WeekDay
	Meals []PlannedMeal
}

// ChaosMeal is a random pick resolved to its recipe.
type ChaosMeal struct {
	Day    planner.WeekDay
	Recipe recipe.Recipe
	Color  string
	Emoji  string
}

func (a *App) resolve(ids []string) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := a.Recipes.GetRecipeByID(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// FavoriteRecipes returns the favorite recipes that still exist.
func (a *App) FavoriteRecipes() []recipe.Recipe {
	return a.resolve(a.Recipes.Favorites())
}

// RecentlyViewed returns the recently viewed recipes, newest first.
func (a *App) RecentlyViewed() []recipe.Recipe {
	return a.resolve(a.Recipes.RecentlyViewed())
}

// ViewRecipe looks up a recipe and records it in the history.
func (a *App) ViewRecipe(ctx context.Context, id string) (recipe.Recipe, bool, error) {
	r, ok := a.Recipes.GetRecipeByID(id)
	if !ok {
		return recipe.Recipe{}, false, nil
	}
	if err := a.Recipes.AddToRecentlyViewed(ctx, id); err != nil {
		return r, true, err
	}
	return r, true, nil
}

// Recommended returns up to count recipes ranked by plan usage.
// Usage entries of deleted recipes are skipped without shrinking the result.
func (a *App) Recommended(count int) []recipe.Recipe {
	if count <= 0 {
		return []recipe.Recipe{}
	}
	resolved := a.resolve(a.Planner.GetRecommendedRecipes(math.MaxInt32))
	if len(resolved) > count {
		resolved = resolved[:count]
	}
	return resolved
}

// WeekPlan lays out the meal plan day by day for the enabled meal types.
func (a *App) WeekPlan() []DayPlan {
	enabled := a.Settings.Settings().EnabledMealTypes
	grid := a.Planner.Grid()

	week := make([]DayPlan, 0, len(planner.WeekDays))
	for _, day := range planner.WeekDays {
		dp := DayPlan{Day: day}
		for _, mt := range planner.MealTypes {
			if !slices.Contains(enabled, mt) {
				continue
			}
			meal := PlannedMeal{MealType: mt}
			if recipeID, ok := grid[day][mt]; ok {
				if item, ok := a.Planner.Item(day, mt); ok {
					meal.ItemID = item.ID
				}
				if r, ok := a.Recipes.GetRecipeByID(recipeID); ok {
					meal.Recipe = &r
				}
			}
			dp.Meals = append(dp.Meals, meal)
		}
		week = append(week, dp)
	}
	return week
}

// PlanMeal validates that the recipe exists before putting it in the plan.
func (a *App) PlanMeal(ctx context.Context, day planner.WeekDay, mealType planner.MealType, recipeID string) error {
	if _, ok := a.Recipes.GetRecipeByID(recipeID); !ok {
		return fmt.Errorf("recipe %q not found", recipeID)
	}
	return a.Planner.AddMeal(ctx, day, mealType, recipeID)
}

// AddPlanToShoppingList adds the ingredients of every planned recipe to the shopping list.
// It returns how many ingredient names were considered.
func (a *App) AddPlanToShoppingList(ctx context.Context) (int, error) {
	var names []string
	for _, item := range a.Planner.Items() {
		r, ok := a.Recipes.GetRecipeByID(item.RecipeID)
		if !ok {
			a.log.Debug("skipping dangling plan item", zap.String("recipe_id", item.RecipeID))
			continue
		}
		for _, ing := range r.Ingredients {
			names = append(names, ing.Name)
		}
	}
	if err := a.Shopping.AddItems(ctx, names); err != nil {
		return 0, err
	}
	return len(names), nil
}

// AddRecipeToShoppingList adds the ingredients of a single recipe to the shopping list.
func (a *App) AddRecipeToShoppingList(ctx context.Context, recipeID string) (int, error) {
	r, ok := a.Recipes.GetRecipeByID(recipeID)
	if !ok {
		return 0, fmt.Errorf("recipe %q not found", recipeID)
	}
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	if err := a.Shopping.AddItems(ctx, names); err != nil {
		return 0, err
	}
	return len(names), nil
}

// ChaosPlan draws one random meal per day.
func (a *App) ChaosPlan() []ChaosMeal {
	picks := a.Chaos.Picks(len(planner.WeekDays))
	meals := make([]ChaosMeal, 0, len(picks))
	for i, p := range picks {
		r, ok := a.Recipes.GetRecipeByID(p.RecipeID)
		if !ok {
			continue
		}
		meals = append(meals, ChaosMeal{Day: planner.WeekDays[i], Recipe: r, Color: p.Color, Emoji: p.Emoji})
	}
	return meals
}
