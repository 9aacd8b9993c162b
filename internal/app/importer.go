package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recipe-box/internal/recipe"
)

// DefaultImportCategory files clipped recipes whose category is unknown.
const DefaultImportCategory = "Dinner"

const importConcurrency = 4

// ImportResult reports the outcome of importing one URL.
type ImportResult struct {
	URL   string
	ID    string
	Title string
	Err   error
}

// ImportRecipe clips url, files it under category (or the clipped category when empty),
// validates it and saves it as a user recipe.
func (a *App) ImportRecipe(ctx context.Context, url, category string) (recipe.Recipe, error) {
	r, err := a.Clipper.ClipURL(ctx, url)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to clip recipe: %w", err)
	}
	return a.saveClipped(ctx, r, category)
}

// ImportRecipes clips every URL concurrently and saves the ones that parse.
// Results keep the order of urls; one failure does not stop the others.
func (a *App) ImportRecipes(ctx context.Context, urls []string, category string) []ImportResult {
	results := make([]ImportResult, len(urls))
	clipped := make([]recipe.Recipe, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)
	for i, url := range urls {
		results[i].URL = url
		g.Go(func() error {
			r, err := a.Clipper.ClipURL(gctx, url)
			if err != nil {
				results[i].Err = fmt.Errorf("failed to clip recipe: %w", err)
				return nil
			}
			clipped[i] = r
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		if results[i].Err != nil {
			a.log.Warn("import failed", zap.String("url", results[i].URL), zap.Error(results[i].Err))
			continue
		}
		saved, err := a.saveClipped(ctx, clipped[i], category)
		if err != nil {
			results[i].Err = err
			a.log.Warn("import failed", zap.String("url", results[i].URL), zap.Error(err))
			continue
		}
		results[i].ID = saved.ID
		results[i].Title = saved.Title
	}
	return results
}

func (a *App) saveClipped(ctx context.Context, r recipe.Recipe, category string) (recipe.Recipe, error) {
	if category != "" {
		c, ok := a.Catalog.CategoryByName(category)
		if !ok {
			return recipe.Recipe{}, fmt.Errorf("unknown category %q", category)
		}
		r.Category = c.Name
	} else if c, ok := a.Catalog.CategoryByName(r.Category); ok {
		r.Category = c.Name
	} else {
		r.Category = DefaultImportCategory
	}

	if err := recipe.Validate(r); err != nil {
		return recipe.Recipe{}, err
	}

	id, err := a.Recipes.AddUserRecipe(ctx, r)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to save recipe: %w", err)
	}
	r.ID = id
	r.UserCreated = true
	return r, nil
}
