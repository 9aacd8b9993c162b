package telegram

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"recipe-box/internal/chaos"
	"recipe-box/internal/metrics"
	"recipe-box/internal/recipe"
)

const (
	defaultRecommendations = 5
	maxSearchResults       = 10
	metricsDays            = 7
)

const helpText = `🍳 *Recipe Box*

/plan - this week's meal plan
/recommend [n] - your most planned recipes
/shop - the shopping list
/add milk, eggs - add items to the list
/done <n> - tick off item n
/clear - remove ticked items
/fromplan - add the plan's ingredients to the list
/chaos - ???

Send a recipe link to import it, or any other text to search.`

// respond runs one command and returns the Markdown reply.
func (b *Bot) respond(ctx context.Context, userID int64, text string) string {
	cmd, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	args = strings.TrimSpace(args)
	// Commands may be addressed as /cmd@botname in groups.
	cmd, _, _ = strings.Cut(cmd, "@")
	cmd = strings.ToLower(cmd)
	metrics.ObserveCommand(commandLabel(cmd))

	switch cmd {
	case "/start", "/help":
		return helpText
	case "/plan":
		return formatWeekPlan(b.app.WeekPlan())
	case "/recommend":
		return b.recommend(args)
	case "/shop":
		return formatShoppingList(b.app.Shopping.Items())
	case "/add":
		return b.addItems(ctx, args)
	case "/done":
		return b.toggleItem(ctx, args)
	case "/clear":
		if err := b.app.Shopping.ClearCompletedItems(ctx); err != nil {
			return b.failure("clearing the list", err)
		}
		return "🧹 Cleared the ticked items."
	case "/fromplan":
		n, err := b.app.AddPlanToShoppingList(ctx)
		if err != nil {
			return b.failure("updating the list", err)
		}
		return fmt.Sprintf("🛒 Added %d ingredients from the plan.", n)
	case "/chaos":
		return b.chaos(ctx, args)
	case "/metrics":
		if userID != b.cfg.AdminTelegramID {
			return "⛔ *Access Denied*: Admin only."
		}
		return b.metricsReport(ctx)
	}

	if strings.HasPrefix(cmd, "/") {
		return fmt.Sprintf("🤔 Unknown command %s. Try /help.", escape(cmd))
	}
	return formatSearchResults(text, b.app.Recipes.SearchRecipes(text))
}

var knownCommands = []string{
	"/start", "/help", "/plan", "/recommend", "/shop", "/add", "/done", "/clear", "/fromplan", "/chaos", "/metrics",
}

// commandLabel keeps the command metric's label set bounded.
func commandLabel(cmd string) string {
	switch {
	case !strings.HasPrefix(cmd, "/"):
		return "search"
	case slices.Contains(knownCommands, cmd):
		return cmd
	default:
		return "unknown"
	}
}

func (b *Bot) recommend(args string) string {
	count := defaultRecommendations
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			return "Usage: /recommend [count]"
		}
		count = n
	}
	recipes := b.app.Recommended(count)
	if len(recipes) == 0 {
		return "⭐ *Recommended*\n\n_Plan a few meals first._"
	}
	return formatRecipeList("⭐ *Recommended*", recipes)
}

func (b *Bot) addItems(ctx context.Context, args string) string {
	names := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == '\n' })
	if len(names) == 0 {
		return "Usage: /add milk, eggs"
	}
	if err := b.app.Shopping.AddItems(ctx, names); err != nil {
		return b.failure("updating the list", err)
	}
	return formatShoppingList(b.app.Shopping.Items())
}

func (b *Bot) toggleItem(ctx context.Context, args string) string {
	n, err := strconv.Atoi(args)
	if err != nil {
		return "Usage: /done <item number>"
	}
	item, ok := b.app.Shopping.ItemByPosition(n)
	if !ok {
		return fmt.Sprintf("There is no item %d.", n)
	}
	if err := b.app.Shopping.ToggleItem(ctx, item.ID); err != nil {
		return b.failure("updating the list", err)
	}
	return formatShoppingList(b.app.Shopping.Items())
}

func (b *Bot) chaos(ctx context.Context, args string) string {
	if strings.EqualFold(args, "off") {
		if !b.app.Chaos.IsEnabled() {
			return "Chaos mode is already off."
		}
		if err := b.app.Chaos.Toggle(ctx); err != nil {
			return b.failure("calming down", err)
		}
		return "😌 Order restored."
	}

	if b.app.Chaos.IsEnabled() {
		return formatChaosPlan(b.app.Chaos.RandomFunnyTitle(), b.app.ChaosPlan())
	}

	if err := b.app.Chaos.IncrementSecretTapCount(ctx); err != nil {
		return b.failure("counting taps", err)
	}
	if b.app.Chaos.IsEnabled() {
		return "🌀 *Chaos mode unlocked!* Send /chaos again."
	}
	left := chaos.RequiredTaps - b.app.Chaos.State().SecretTapCount
	return fmt.Sprintf("🤫 %d...", left)
}

func (b *Bot) metricsReport(ctx context.Context) string {
	if b.app.Metrics == nil {
		return "📊 Metrics are disabled."
	}
	daily, err := b.app.Metrics.GetDailyUsage(ctx, metricsDays)
	if err != nil {
		return b.failure("fetching metrics", err)
	}
	stores, err := b.app.Metrics.GetStoreUsage(ctx, metricsDays)
	if err != nil {
		return b.failure("fetching metrics", err)
	}
	return formatMetrics(daily, stores, metrics.GetSysHealth(b.cfg.DataPath))
}

func (b *Bot) importReply(ctx context.Context, url string) string {
	r, err := b.app.ImportRecipe(ctx, url, "")
	if err != nil {
		var verr *recipe.ValidationError
		if errors.As(err, &verr) {
			return fmt.Sprintf("❌ *Incomplete recipe:*\n%s", escape(verr.Error()))
		}
		return b.failure("clipping recipe", err)
	}
	return fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\n*Category:* %s\n*Ingredients:* %d\n*ID:* `%s`",
		escape(r.Title), escape(r.Category), len(r.Ingredients), r.ID)
}

func (b *Bot) failure(action string, err error) string {
	b.log.Error("command failed", zap.String("action", action), zap.Error(err))
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	return fmt.Sprintf("❌ *Error %s:*\n```\n%s\n```", action, safeErr)
}
