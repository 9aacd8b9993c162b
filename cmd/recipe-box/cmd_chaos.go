package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipe-box/internal/chaos"
)

var chaosCmd = &cobra.Command{
	Use:    "chaos",
	Short:  "Nothing to see here",
	Hidden: true,
}

var chaosStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether chaos mode is on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := application.Chaos.State()
		if st.IsEnabled {
			fmt.Fprintln(cmd.OutOrStdout(), "chaos mode: on")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chaos mode: off (%d/%d taps)\n", st.SecretTapCount, chaos.RequiredTaps)
		return nil
	},
}

var chaosTapCmd = &cobra.Command{
	Use:   "tap",
	Short: "Tap the secret area",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wasEnabled := application.Chaos.IsEnabled()
		if err := application.Chaos.IncrementSecretTapCount(cmd.Context()); err != nil {
			return err
		}
		if !wasEnabled && application.Chaos.IsEnabled() {
			fmt.Fprintln(cmd.OutOrStdout(), currentTheme().Warning.Render("🌀 Chaos mode unlocked!"))
		}
		return nil
	},
}

var chaosToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip chaos mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Chaos.Toggle(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chaos mode: %s\n", onOff(application.Chaos.IsEnabled()))
		return nil
	},
}

var chaosPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Draw a random meal plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Chaos.IsEnabled() {
			return fmt.Errorf("chaos mode is off")
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, currentTheme().Title.Render(application.Chaos.RandomFunnyTitle()))
		for _, m := range application.ChaosPlan() {
			fmt.Fprintf(w, "%s %-9s %s\n", m.Emoji, m.Day.Title(), swatch(m.Color, m.Recipe.Title))
		}
		return nil
	},
}

func init() {
	chaosCmd.AddCommand(chaosStatusCmd)
	chaosCmd.AddCommand(chaosTapCmd)
	chaosCmd.AddCommand(chaosToggleCmd)
	chaosCmd.AddCommand(chaosPickCmd)
}
