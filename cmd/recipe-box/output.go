package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"recipe-box/internal/recipe"
)

func printRecipeTable(w io.Writer, recipes []recipe.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, currentTheme().Muted.Render("No recipes."))
		return
	}

	t := table.New().Headers("ID", "TITLE", "CATEGORY", "TIME", "DIFFICULTY")
	for _, r := range recipes {
		title := r.Title
		if application.Recipes.IsFavorite(r.ID) {
			title = "★ " + title
		}
		t.Row(r.ID, title, r.Category, formatMinutes(r.TotalTime()), string(r.Difficulty))
	}
	fmt.Fprintln(w, t.Render())
}

func printRecipe(w io.Writer, r recipe.Recipe, showImages bool) {
	th := currentTheme()

	fmt.Fprintln(w, th.Title.Render(r.Title))
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}
	fmt.Fprintln(w)

	meta := []string{
		"Category: " + r.Category,
		"Difficulty: " + string(r.Difficulty),
		"Prep: " + formatMinutes(r.PrepTime),
		"Cook: " + formatMinutes(r.CookTime),
		"Serves: " + strconv.Itoa(r.Servings),
	}
	if r.Rating > 0 {
		meta = append(meta, fmt.Sprintf("Rating: %.1f", r.Rating))
	}
	fmt.Fprintln(w, th.Muted.Render(strings.Join(meta, " | ")))
	if showImages && r.ImageURL != "" {
		fmt.Fprintln(w, th.Muted.Render("Image: "+r.ImageURL))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, th.Heading.Render("Ingredients"))
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  • %s\n", formatIngredient(ing))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, th.Heading.Render("Instructions"))
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}

	if n := r.Nutrition; n != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, th.Heading.Render("Nutrition"))
		fmt.Fprintf(w, "  %d kcal, %dg protein, %dg carbs, %dg fat\n", n.Calories, n.Protein, n.Carbs, n.Fat)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, th.Muted.Render("#"+strings.Join(r.Tags, " #")))
	}
}

func formatIngredient(ing recipe.Ingredient) string {
	var parts []string
	if ing.Amount > 0 {
		parts = append(parts, humanize.Ftoa(ing.Amount))
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	return strings.Join(append(parts, ing.Name), " ")
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
