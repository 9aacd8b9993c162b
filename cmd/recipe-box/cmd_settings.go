package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipe-box/internal/planner"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsMealCmd = &cobra.Command{
	Use:   "meal [meal-type]",
	Short: "Show or hide a meal type in the plan (the last one cannot be hidden)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealType, err := planner.ParseMealType(args[0])
		if err != nil {
			return err
		}
		if err := application.Settings.ToggleMealType(cmd.Context(), mealType); err != nil {
			return err
		}
		return runSettingsShow(cmd, nil)
	},
}

var settingsImagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Toggle recipe images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Settings.ToggleShowRecipeImages(cmd.Context()); err != nil {
			return err
		}
		return runSettingsShow(cmd, nil)
	},
}

var settingsDarkCmd = &cobra.Command{
	Use:   "dark",
	Short: "Toggle dark mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Settings.ToggleDarkMode(cmd.Context()); err != nil {
			return err
		}
		return runSettingsShow(cmd, nil)
	},
}

var settingsNotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Toggle notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Settings.ToggleNotifications(cmd.Context()); err != nil {
			return err
		}
		return runSettingsShow(cmd, nil)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsMealCmd)
	settingsCmd.AddCommand(settingsImagesCmd)
	settingsCmd.AddCommand(settingsDarkCmd)
	settingsCmd.AddCommand(settingsNotificationsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s := application.Settings.Settings()
	w := cmd.OutOrStdout()

	meals := make([]string, len(s.EnabledMealTypes))
	for i, mt := range s.EnabledMealTypes {
		meals[i] = string(mt)
	}
	fmt.Fprintf(w, "meal types:     %s\n", strings.Join(meals, ", "))
	fmt.Fprintf(w, "recipe images:  %s\n", onOff(s.ShowRecipeImages))
	fmt.Fprintf(w, "dark mode:      %s\n", onOff(s.DarkMode))
	fmt.Fprintf(w, "notifications:  %s\n", onOff(s.NotificationsEnabled))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
