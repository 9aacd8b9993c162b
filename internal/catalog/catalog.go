// Package catalog serves the built-in recipes and categories shipped with the binary.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"recipe-box/internal/recipe"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog is an immutable set of built-in recipes and categories.
// All methods return copies and are safe for concurrent use.
type Catalog struct {
	recipes    []recipe.Recipe
	categories []recipe.Category
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	var c Catalog
	if err := decode("data/recipes.json", &c.recipes); err != nil {
		return nil, err
	}
	if err := decode("data/categories.json", &c.categories); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustLoad is Load for callers that cannot recover from a broken build.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from explicit data.
func New(recipes []recipe.Recipe, categories []recipe.Category) *Catalog {
	return &Catalog{recipes: cloneAll(recipes), categories: append([]recipe.Category(nil), categories...)}
}

func decode(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Recipes returns every built-in recipe.
func (c *Catalog) Recipes() []recipe.Recipe {
	return cloneAll(c.recipes)
}

// RecipeByID looks up a built-in recipe.
func (c *Catalog) RecipeByID(id string) (recipe.Recipe, bool) {
	for _, r := range c.recipes {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return recipe.Recipe{}, false
}

// RecipeIDs lists the built-in recipe ids in catalog order.
func (c *Catalog) RecipeIDs() []string {
	ids := make([]string, len(c.recipes))
	for i, r := range c.recipes {
		ids[i] = r.ID
	}
	return ids
}

// RecipesByCategory returns the built-in recipes filed under the category's name.
func (c *Catalog) RecipesByCategory(categoryID string) []recipe.Recipe {
	category, ok := c.CategoryByID(categoryID)
	if !ok {
		return nil
	}
	var out []recipe.Recipe
	for _, r := range c.recipes {
		if r.Category == category.Name {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Search returns the built-in recipes matching query.
func (c *Catalog) Search(query string) []recipe.Recipe {
	var out []recipe.Recipe
	for _, r := range c.recipes {
		if r.Matches(query) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Featured returns the recipes flagged for the home screen.
func (c *Catalog) Featured() []recipe.Recipe {
	var out []recipe.Recipe
	for _, r := range c.recipes {
		if r.Featured {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Categories returns the fixed category list.
func (c *Catalog) Categories() []recipe.Category {
	return append([]recipe.Category(nil), c.categories...)
}

// CategoryIDs lists the category ids in catalog order.
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, len(c.categories))
	for i, cat := range c.categories {
		ids[i] = cat.ID
	}
	return ids
}

// CategoryByID looks up a category.
func (c *Catalog) CategoryByID(id string) (recipe.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return recipe.Category{}, false
}

// CategoryByName looks up a category ignoring case.
func (c *Catalog) CategoryByName(name string) (recipe.Category, bool) {
	for _, cat := range c.categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return recipe.Category{}, false
}

func cloneAll(recipes []recipe.Recipe) []recipe.Recipe {
	out := make([]recipe.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}

var _ recipe.Catalog = (*Catalog)(nil)
