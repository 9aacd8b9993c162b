package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipe-box/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the weekly meal plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the meal plan for the enabled meal types",
	Args:  cobra.NoArgs,
	RunE:  runPlanShow,
}

var planAddCmd = &cobra.Command{
	Use:   "add [day] [meal-type] [recipe-id]",
	Short: "Put a recipe into a slot, replacing what was there",
	Example: `  recipe-box plan add monday dinner 2
  recipe-box plan add tue lunch user_lq3k2x8a9b`,
	Args: cobra.ExactArgs(3),
	RunE: runPlanAdd,
}

var planRemoveCmd = &cobra.Command{
	Use:   "remove [day] [meal-type]",
	Short: "Empty a slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanRemove,
}

var planClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the whole plan (usage history is kept)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Planner.ClearMealPlan(cmd.Context())
	},
}

var planRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recipes you plan most, least recently used first",
	Args:  cobra.NoArgs,
	RunE:  runPlanRecommend,
}

var planShopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Add the ingredients of every planned recipe to the shopping list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := application.AddPlanToShoppingList(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d ingredients to the shopping list.\n", n)
		return nil
	},
}

var recommendCount int

func init() {
	planRecommendCmd.Flags().IntVarP(&recommendCount, "count", "n", 5, "Number of recipes")

	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planRemoveCmd)
	planCmd.AddCommand(planClearCmd)
	planCmd.AddCommand(planRecommendCmd)
	planCmd.AddCommand(planShopCmd)
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	th := currentTheme()
	for _, dp := range application.WeekPlan() {
		fmt.Fprintln(w, th.Heading.Render(dp.Day.Title()))
		for _, meal := range dp.Meals {
			label := fmt.Sprintf("  %-10s", meal.MealType.Title())
			switch {
			case meal.Recipe != nil:
				fmt.Fprintf(w, "%s %s (%s)\n", label, meal.Recipe.Title, meal.Recipe.ID)
			case meal.ItemID != "":
				fmt.Fprintf(w, "%s %s\n", label, th.Warning.Render("recipe no longer exists"))
			default:
				fmt.Fprintf(w, "%s %s\n", label, th.Muted.Render("-"))
			}
		}
	}
	return nil
}

func runPlanAdd(cmd *cobra.Command, args []string) error {
	day, err := planner.ParseWeekDay(args[0])
	if err != nil {
		return err
	}
	mealType, err := planner.ParseMealType(args[1])
	if err != nil {
		return err
	}
	if err := application.PlanMeal(cmd.Context(), day, mealType, args[2]); err != nil {
		return err
	}
	if !application.Settings.IsMealTypeEnabled(mealType) {
		fmt.Fprintf(cmd.OutOrStdout(), "Note: %s is hidden, enable it with `settings meal %s`.\n", mealType.Title(), mealType)
	}
	return nil
}

func runPlanRemove(cmd *cobra.Command, args []string) error {
	day, err := planner.ParseWeekDay(args[0])
	if err != nil {
		return err
	}
	mealType, err := planner.ParseMealType(args[1])
	if err != nil {
		return err
	}
	return application.Planner.RemoveMeal(cmd.Context(), day, mealType)
}

func runPlanRecommend(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	recipes := application.Recommended(recommendCount)
	if len(recipes) == 0 {
		fmt.Fprintln(w, currentTheme().Muted.Render("Plan a few meals first."))
		return nil
	}
	for i, r := range recipes {
		line := fmt.Sprintf("%d. %s (%s)", i+1, r.Title, r.ID)
		if days, ok := application.Planner.DaysSinceLastUse(r.ID); ok {
			line += fmt.Sprintf(" - last planned %d days ago", days)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
