package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"recipe-box/internal/shopping"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Manage the shopping list",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the shopping list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printShoppingList(cmd, application.Shopping.Items())
		return nil
	},
}

var shopAddCmd = &cobra.Command{
	Use:   "add [item...]",
	Short: "Add items, or bring back ticked items with the same name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Shopping.AddItems(cmd.Context(), args); err != nil {
			return err
		}
		printShoppingList(cmd, application.Shopping.Items())
		return nil
	},
}

var shopToggleCmd = &cobra.Command{
	Use:   "toggle [n]",
	Short: "Tick or untick item n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := itemAt(args[0])
		if err != nil {
			return err
		}
		if err := application.Shopping.ToggleItem(cmd.Context(), item.ID); err != nil {
			return err
		}
		printShoppingList(cmd, application.Shopping.Items())
		return nil
	},
}

var shopRemoveCmd = &cobra.Command{
	Use:   "remove [n]",
	Short: "Remove item n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := itemAt(args[0])
		if err != nil {
			return err
		}
		return application.Shopping.RemoveItem(cmd.Context(), item.ID)
	},
}

var shopClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every ticked item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Shopping.ClearCompletedItems(cmd.Context())
	},
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopAddCmd)
	shopCmd.AddCommand(shopToggleCmd)
	shopCmd.AddCommand(shopRemoveCmd)
	shopCmd.AddCommand(shopClearCmd)
}

func itemAt(arg string) (shopping.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return shopping.Item{}, fmt.Errorf("item number expected, got %q", arg)
	}
	item, ok := application.Shopping.ItemByPosition(n)
	if !ok {
		return shopping.Item{}, fmt.Errorf("there is no item %d", n)
	}
	return item, nil
}

func printShoppingList(cmd *cobra.Command, items []shopping.Item) {
	w := cmd.OutOrStdout()
	th := currentTheme()
	if len(items) == 0 {
		fmt.Fprintln(w, th.Muted.Render("The shopping list is empty."))
		return
	}
	for i, it := range items {
		if it.Completed {
			fmt.Fprintf(w, "%2d. [x] %s\n", i+1, th.Muted.Render(it.Name))
			continue
		}
		fmt.Fprintf(w, "%2d. [ ] %s\n", i+1, it.Name)
	}
	active := len(application.Shopping.ActiveItems())
	fmt.Fprintln(w, th.Muted.Render(fmt.Sprintf("%d to buy, %d done", active, len(items)-active)))
}
