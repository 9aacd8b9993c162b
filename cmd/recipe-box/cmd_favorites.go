package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite recipes",
}

var favAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Mark a recipe as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := application.Recipes.GetRecipeByID(args[0]); !ok {
			return fmt.Errorf("recipe %q not found", args[0])
		}
		if application.Recipes.IsFavorite(args[0]) {
			fmt.Fprintln(cmd.OutOrStdout(), "Already a favorite.")
			return nil
		}
		return application.Recipes.AddToFavorites(cmd.Context(), args[0])
	},
}

var favRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Unmark a favorite recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Recipes.RemoveFromFavorites(cmd.Context(), args[0])
	},
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printRecipeTable(cmd.OutOrStdout(), application.FavoriteRecipes())
		return nil
	},
}

// recentCmd shows the recently viewed recipes, newest first
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently viewed recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printRecipeTable(cmd.OutOrStdout(), application.RecentlyViewed())
		return nil
	},
}

func init() {
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRemoveCmd)
	favCmd.AddCommand(favListCmd)
}
