package telegram

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recipe-box/internal/app"
	"recipe-box/internal/metrics"
	"recipe-box/internal/recipe"
	"recipe-box/internal/shopping"
)

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func formatWeekPlan(week []app.DayPlan) string {
	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n\n")

	planned := 0
	for _, dp := range week {
		var lines []string
		for _, meal := range dp.Meals {
			if meal.Recipe == nil {
				continue
			}
			planned++
			line := fmt.Sprintf("  %s: %s", meal.MealType.Title(), escape(meal.Recipe.Title))
			if total := meal.Recipe.TotalTime(); total > 0 {
				line += fmt.Sprintf(" (%d mins)", total)
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n%s\n\n", dp.Day.Title(), strings.Join(lines, "\n")))
	}

	if planned == 0 {
		sb.WriteString("_Nothing planned yet._\n")
	}
	return sb.String()
}

func formatShoppingList(items []shopping.Item) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	if len(items) == 0 {
		sb.WriteString("_The list is empty._\n")
		return sb.String()
	}
	for i, it := range items {
		mark := "⬜"
		if it.Completed {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, mark, escape(it.Name)))
	}
	return sb.String()
}

func formatRecipeList(header string, recipes []recipe.Recipe) string {
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	for _, r := range recipes {
		sb.WriteString(fmt.Sprintf("• %s _(%s, %d mins)_\n", escape(r.Title), escape(r.Category), r.TotalTime()))
	}
	return sb.String()
}

func formatSearchResults(query string, recipes []recipe.Recipe) string {
	if len(recipes) == 0 {
		return fmt.Sprintf("🔍 No recipes match %q.", query)
	}
	header := fmt.Sprintf("🔍 *%d recipes found*", len(recipes))
	if len(recipes) > maxSearchResults {
		recipes = recipes[:maxSearchResults]
	}
	return formatRecipeList(header, recipes)
}

func formatChaosPlan(title string, meals []app.ChaosMeal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🌀 *%s*\n\n", escape(title)))
	for _, m := range meals {
		sb.WriteString(fmt.Sprintf("%s *%s*: %s\n", m.Emoji, m.Day.Title(), escape(m.Recipe.Title)))
	}
	return sb.String()
}

func formatMetrics(daily []metrics.DailyUsage, stores []metrics.StoreUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Writes*\n")
	if len(daily) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range daily {
		sb.WriteString(fmt.Sprintf("• *%s*: %d writes (%s)\n", d.Date, d.Writes, humanize.IBytes(uint64(d.Bytes))))
	}

	if len(stores) > 0 {
		sb.WriteString("\n🗄 *By Store*\n")
		for _, s := range stores {
			sb.WriteString(fmt.Sprintf("• %s: %d writes, avg %.1fms\n", escape(s.StoreKey), s.Writes, s.AvgLatencyMS))
		}
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %s (Alloc) / %s (Sys)\n", health.Alloc, health.Sys))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	return sb.String()
}
