// Package recipe holds the recipe data model and the store for favorites, history and user recipes.
package recipe

import (
	"slices"
	"strings"
)

// Difficulty grades how demanding a recipe is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty accepts any casing of a difficulty name.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Amount float64 `json:"amount" yaml:"amount" validate:"gte=0"`
	Unit   string  `json:"unit" yaml:"unit"`
}

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories int `json:"calories" yaml:"calories" validate:"gte=0"`
	Protein  int `json:"protein" yaml:"protein" validate:"gte=0"`
	Carbs    int `json:"carbs" yaml:"carbs" validate:"gte=0"`
	Fat      int `json:"fat" yaml:"fat" validate:"gte=0"`
}

// Recipe is a built-in or user-authored recipe.
// The yaml tags describe the recipe files accepted by the CLI.
type Recipe struct {
	ID           string       `json:"id" yaml:"id,omitempty"`
	Title        string       `json:"title" yaml:"title" validate:"required,max=200"`
	Description  string       `json:"description" yaml:"description" validate:"max=2000"`
	ImageURL     string       `json:"image_url" yaml:"image_url,omitempty"`
	PrepTime     int          `json:"prep_time" yaml:"prep_time" validate:"gte=0"`
	CookTime     int          `json:"cook_time" yaml:"cook_time" validate:"gte=0"`
	Servings     int          `json:"servings" yaml:"servings" validate:"gt=0"`
	Difficulty   Difficulty   `json:"difficulty" yaml:"difficulty" validate:"oneof=Easy Medium Hard"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients" validate:"min=1,dive"`
	Instructions []string     `json:"instructions" yaml:"instructions" validate:"min=1,dive,required"`
	Category     string       `json:"category" yaml:"category" validate:"required"`
	Tags         []string     `json:"tags" yaml:"tags,omitempty"`
	Nutrition    *Nutrition   `json:"nutrition,omitempty" yaml:"nutrition,omitempty"`
	Featured     bool         `json:"featured,omitempty" yaml:"-"`
	Rating       float64      `json:"rating,omitempty" yaml:"-"`
	UserCreated  bool         `json:"user_created,omitempty" yaml:"-"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// Matches reports whether query is a case-insensitive substring of the title, description,
// category, any tag or any ingredient name. An empty query matches everything.
func (r Recipe) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }

	if contains(r.Title) || contains(r.Description) || contains(r.Category) {
		return true
	}
	for _, tag := range r.Tags {
		if contains(tag) {
			return true
		}
	}
	for _, ing := range r.Ingredients {
		if contains(ing.Name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share slices with a store.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Instructions = slices.Clone(r.Instructions)
	c.Tags = slices.Clone(r.Tags)
	if r.Nutrition != nil {
		n := *r.Nutrition
		c.Nutrition = &n
	}
	return c
}

// Category groups recipes. The set of categories is fixed.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Catalog is the read-only source of built-in recipes and categories.
type Catalog interface {
	RecipeByID(id string) (Recipe, bool)
	Recipes() []Recipe
	RecipesByCategory(categoryID string) []Recipe
	Search(query string) []Recipe
	CategoryByID(id string) (Category, bool)
}
