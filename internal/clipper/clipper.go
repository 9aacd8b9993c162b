// Package clipper imports recipes from web pages.
package clipper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipe-box/internal/recipe"
)

// ErrNoRecipe is returned when a page holds neither structured recipe data nor
// recognizable ingredient and instruction lists.
var ErrNoRecipe = errors.New("no recipe found on page")

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	client *http.Client
	log    *zap.Logger
}

// NewClipper creates a new Clipper instance.
func NewClipper(log *zap.Logger) *Clipper {
	return &Clipper{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log.Named("clipper"),
	}
}

// ClipURL fetches the URL and turns it into an unsaved recipe.
// Structured schema.org data is preferred; otherwise the page's headings are used.
func (c *Clipper) ClipURL(ctx context.Context, url string) (recipe.Recipe, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	r, ok := fromJSONLD(doc)
	source := "json-ld"
	if !ok {
		r, ok = fromHeadings(doc)
		source = "headings"
	}
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("%s: %w", url, ErrNoRecipe)
	}

	finish(&r, url)
	c.log.Info("clipped recipe",
		zap.String("url", url),
		zap.String("title", r.Title),
		zap.String("source", source),
		zap.Int("ingredients", len(r.Ingredients)))
	return r, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "recipe-box/1.0 (+recipe clipper)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// finish fills the fields a page rarely provides so the result passes validation
// once the user picks a category.
func finish(r *recipe.Recipe, url string) {
	if r.Description == "" {
		r.Description = "Imported from " + url
	}
	if r.Servings <= 0 {
		r.Servings = 1
	}
	if r.Difficulty == "" {
		r.Difficulty = guessDifficulty(r)
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if !containsFold(r.Tags, "imported") {
		r.Tags = append(r.Tags, "imported")
	}
}

// guessDifficulty grades by effort: long or many-step recipes are harder.
func guessDifficulty(r *recipe.Recipe) recipe.Difficulty {
	switch {
	case r.TotalTime() > 90 || len(r.Instructions) > 12:
		return recipe.DifficultyHard
	case r.TotalTime() > 30 || len(r.Instructions) > 6:
		return recipe.DifficultyMedium
	default:
		return recipe.DifficultyEasy
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
