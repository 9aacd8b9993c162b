// Package planner keeps the weekly meal plan and the usage history behind recipe recommendations.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDay      = errors.New("invalid day")
	ErrInvalidMealType = errors.New("invalid meal type")
)

// WeekDay is a day of the planning week.
type WeekDay string

const (
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
	Saturday  WeekDay = "saturday"
	Sunday    WeekDay = "sunday"
)

// WeekDays lists the days in calendar order, starting on Monday.
var WeekDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekDay accepts a full day name or its three letter abbreviation, in any case.
func ParseWeekDay(s string) (WeekDay, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range WeekDays {
		if s == string(d) || (len(s) == 3 && strings.HasPrefix(string(d), s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// Valid reports whether d is one of WeekDays.
func (d WeekDay) Valid() bool {
	for _, v := range WeekDays {
		if d == v {
			return true
		}
	}
	return false
}

// Title renders the day for display, e.g. "Monday".
func (d WeekDay) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// MealType is a slot within a day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the slots in the order they happen during a day.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseMealType accepts a meal type name in any case.
func ParseMealType(s string) (MealType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range MealTypes {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMealType, s)
}

// Valid reports whether m is one of MealTypes.
func (m MealType) Valid() bool {
	for _, v := range MealTypes {
		if m == v {
			return true
		}
	}
	return false
}

// Title renders the meal type for display, e.g. "Dinner".
func (m MealType) Title() string {
	return WeekDay(m).Title()
}

// Item assigns a recipe to one (day, meal type) slot.
// RecipeID is a plain reference and may point at a recipe that no longer exists.
type Item struct {
	ID       string   `json:"id"`
	Day      WeekDay  `json:"day"`
	MealType MealType `json:"meal_type"`
	RecipeID string   `json:"recipe_id"`
}

// Usage counts how often a recipe was ever planned. It is never decremented.
type Usage struct {
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}
