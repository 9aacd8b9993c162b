package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recipe-box/internal/clipper"
	"recipe-box/internal/ghost"
	"recipe-box/internal/recipe"
)

// recipesCmd groups the recipe browsing and editing commands
var recipesCmd = &cobra.Command{
	Use:     "recipes",
	Aliases: []string{"recipe", "r"},
	Short:   "Browse, search and edit recipes",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Args:  cobra.NoArgs,
	RunE:  runRecipesList,
}

var recipesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a recipe and add it to the recently viewed list",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesShow,
}

var recipesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search titles, descriptions, categories, tags and ingredients",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesSearch,
}

var recipesCategoryCmd = &cobra.Command{
	Use:   "category [id]",
	Short: "List categories, or the recipes of one category",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecipesCategory,
}

var recipesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user recipe from flags or a YAML file",
	Long: `Create a user recipe.

Either pass the fields as flags:

  recipe-box recipes add --title "Pancakes" --category Breakfast \
    --ingredient "2 cups flour" --ingredient "1 egg" --step "Mix." --step "Fry."

or describe the recipe in a YAML file with the same field names (title, description,
prep_time, cook_time, servings, difficulty, ingredients, instructions, category, tags):

  recipe-box recipes add --file pancakes.yaml`,
	Args: cobra.NoArgs,
	RunE: runRecipesAdd,
}

var recipesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change fields of a user recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesEdit,
}

var recipesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a user recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesDelete,
}

var recipesImportCmd = &cobra.Command{
	Use:   "import [url...]",
	Short: "Import recipes from web pages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecipesImport,
}

var recipesPublishCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "Post a recipe to the Ghost blog configured by GHOST_URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesPublish,
}

var (
	listFeatured bool
	listUser     bool

	recipeFile        string
	recipeTitle       string
	recipeDescription string
	recipeCategory    string
	recipeImage       string
	recipeDifficulty  string
	recipePrep        int
	recipeCook        int
	recipeServings    int
	recipeIngredients []string
	recipeSteps       []string
	recipeTags        []string

	importCategory string
	publishLive    bool
)

func init() {
	recipesListCmd.Flags().BoolVar(&listFeatured, "featured", false, "Only featured recipes")
	recipesListCmd.Flags().BoolVar(&listUser, "mine", false, "Only your own recipes")

	for _, c := range []*cobra.Command{recipesAddCmd, recipesEditCmd} {
		c.Flags().StringVar(&recipeTitle, "title", "", "Recipe title")
		c.Flags().StringVar(&recipeDescription, "description", "", "Short description")
		c.Flags().StringVar(&recipeCategory, "category", "", "Category name")
		c.Flags().StringVar(&recipeImage, "image", "", "Image URL")
		c.Flags().StringVar(&recipeDifficulty, "difficulty", "Easy", "Easy, Medium or Hard")
		c.Flags().IntVar(&recipePrep, "prep", 0, "Prep time in minutes")
		c.Flags().IntVar(&recipeCook, "cook", 0, "Cook time in minutes")
		c.Flags().IntVar(&recipeServings, "servings", 1, "Number of servings")
		c.Flags().StringArrayVar(&recipeIngredients, "ingredient", nil, `Ingredient line such as "2 cups flour" (repeatable)`)
		c.Flags().StringArrayVar(&recipeSteps, "step", nil, "Instruction step (repeatable)")
		c.Flags().StringSliceVar(&recipeTags, "tag", nil, "Tags")
	}
	recipesAddCmd.Flags().StringVarP(&recipeFile, "file", "f", "", "YAML recipe file")

	recipesPublishCmd.Flags().BoolVar(&publishLive, "live", false, "Publish immediately instead of saving a draft")
	recipesImportCmd.Flags().StringVar(&importCategory, "category", "", "File imported recipes under this category")

	recipesCmd.AddCommand(recipesListCmd)
	recipesCmd.AddCommand(recipesShowCmd)
	recipesCmd.AddCommand(recipesSearchCmd)
	recipesCmd.AddCommand(recipesCategoryCmd)
	recipesCmd.AddCommand(recipesAddCmd)
	recipesCmd.AddCommand(recipesEditCmd)
	recipesCmd.AddCommand(recipesDeleteCmd)
	recipesCmd.AddCommand(recipesImportCmd)
	recipesCmd.AddCommand(recipesPublishCmd)
}

func runRecipesList(cmd *cobra.Command, args []string) error {
	recipes := application.Recipes.AllRecipes()
	switch {
	case listFeatured:
		recipes = application.Catalog.Featured()
	case listUser:
		recipes = application.Recipes.UserRecipes()
	}
	printRecipeTable(cmd.OutOrStdout(), recipes)
	return nil
}

func runRecipesShow(cmd *cobra.Command, args []string) error {
	r, ok, err := application.ViewRecipe(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("recipe %q not found", args[0])
	}
	printRecipe(cmd.OutOrStdout(), r, application.Settings.Settings().ShowRecipeImages)
	return nil
}

func runRecipesSearch(cmd *cobra.Command, args []string) error {
	printRecipeTable(cmd.OutOrStdout(), application.Recipes.SearchRecipes(args[0]))
	return nil
}

func runRecipesCategory(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, c := range application.Catalog.Categories() {
			fmt.Fprintf(w, "%s  %s\n", c.ID, c.Name)
		}
		return nil
	}

	id := args[0]
	if c, ok := application.Catalog.CategoryByName(id); ok {
		id = c.ID
	}
	if _, ok := application.Catalog.CategoryByID(id); !ok {
		return fmt.Errorf("category %q not found", args[0])
	}
	printRecipeTable(w, application.Recipes.GetRecipesByCategory(id))
	return nil
}

func runRecipesAdd(cmd *cobra.Command, args []string) error {
	var r recipe.Recipe
	if recipeFile != "" {
		data, err := os.ReadFile(recipeFile)
		if err != nil {
			return fmt.Errorf("failed to read recipe file: %w", err)
		}
		if err := yaml.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to parse recipe file: %w", err)
		}
		if r.Servings == 0 {
			r.Servings = 1
		}
		if r.Difficulty == "" {
			r.Difficulty = recipe.DifficultyEasy
		}
	} else {
		r = recipe.Recipe{Servings: 1, Difficulty: recipe.DifficultyEasy}
	}

	if err := applyRecipeFlags(cmd, &r); err != nil {
		return err
	}
	if err := canonicalCategory(&r); err != nil {
		return err
	}
	if err := recipe.Validate(r); err != nil {
		return err
	}

	id, err := application.Recipes.AddUserRecipe(cmd.Context(), r)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", r.Title, id)
	return nil
}

func runRecipesEdit(cmd *cobra.Command, args []string) error {
	r, ok := application.Recipes.UserRecipeByID(args[0])
	if !ok {
		if recipe.IsUserRecipeID(args[0]) {
			return fmt.Errorf("recipe %q not found", args[0])
		}
		return errors.New("built-in recipes cannot be edited")
	}

	if err := applyRecipeFlags(cmd, &r); err != nil {
		return err
	}
	if err := canonicalCategory(&r); err != nil {
		return err
	}
	if err := recipe.Validate(r); err != nil {
		return err
	}
	if err := application.Recipes.UpdateUserRecipe(cmd.Context(), r); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", r.Title)
	return nil
}

func runRecipesDelete(cmd *cobra.Command, args []string) error {
	if _, ok := application.Recipes.UserRecipeByID(args[0]); !ok {
		return fmt.Errorf("user recipe %q not found", args[0])
	}
	if err := application.Recipes.DeleteUserRecipe(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runRecipesImport(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	failed := 0
	for _, res := range application.ImportRecipes(cmd.Context(), args, importCategory) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", res.URL, res.Err)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s)\n", res.Title, res.ID)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}

func runRecipesPublish(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateGhost(); err != nil {
		return err
	}
	r, ok := application.Recipes.GetRecipeByID(args[0])
	if !ok {
		return fmt.Errorf("recipe %q not found", args[0])
	}

	client := ghost.NewClient(cfg.GhostURL, cfg.GhostAdminKey, logger)
	post, err := client.PublishRecipe(cmd.Context(), r, publishLive)
	if err != nil {
		return fmt.Errorf("failed to publish recipe: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Posted %s as %s: %s\n", r.Title, post.Status, post.URL)
	return nil
}

// applyRecipeFlags copies every flag the user set onto r.
func applyRecipeFlags(cmd *cobra.Command, r *recipe.Recipe) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		r.Title = recipeTitle
	}
	if flags.Changed("description") {
		r.Description = recipeDescription
	}
	if flags.Changed("category") {
		r.Category = recipeCategory
	}
	if flags.Changed("image") {
		r.ImageURL = recipeImage
	}
	if flags.Changed("difficulty") {
		d, ok := recipe.ParseDifficulty(recipeDifficulty)
		if !ok {
			return fmt.Errorf("invalid difficulty %q", recipeDifficulty)
		}
		r.Difficulty = d
	}
	if flags.Changed("prep") {
		r.PrepTime = recipePrep
	}
	if flags.Changed("cook") {
		r.CookTime = recipeCook
	}
	if flags.Changed("servings") {
		r.Servings = recipeServings
	}
	if flags.Changed("ingredient") {
		r.Ingredients = r.Ingredients[:0:0]
		for _, line := range recipeIngredients {
			r.Ingredients = append(r.Ingredients, clipper.ParseIngredient(line))
		}
	}
	if flags.Changed("step") {
		r.Instructions = append([]string(nil), recipeSteps...)
	}
	if flags.Changed("tag") {
		r.Tags = append([]string(nil), recipeTags...)
	}
	return nil
}

// canonicalCategory maps the category to its catalog spelling.
func canonicalCategory(r *recipe.Recipe) error {
	if r.Category == "" {
		return nil
	}
	c, ok := application.Catalog.CategoryByName(r.Category)
	if !ok {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	r.Category = c.Name
	return nil
}
