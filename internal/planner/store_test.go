package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recipe-box/internal/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, kv storage.Store, clock *fakeClock) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), kv, zaptest.NewLogger(t), WithClock(clock.Now))
	require.NoError(t, err)
	return s
}

func startClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)}
}

type failingKV struct{ *storage.MemoryStore }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestAddMeal(t *testing.T) {
	ctx := context.Background()
	clock := startClock()
	s := newTestStore(t, storage.NewMemoryStore(), clock)

	require.NoError(t, s.AddMeal(ctx, Monday, Dinner, "r1"))
	first, ok := s.Item(Monday, Dinner)
	require.True(t, ok)
	assert.Equal(t, "r1", first.RecipeID)

	u, ok := s.Usage("r1")
	require.True(t, ok)
	assert.Equal(t, 1, u.Count)
	assert.Equal(t, clock.t, u.LastUsed)

	t.Run("SecondAddReplacesSlot", func(t *testing.T) {
		clock.Advance(time.Hour)
		require.NoError(t, s.AddMeal(ctx, Monday, Dinner, "r2"))

		var inSlot []Item
		for _, it := range s.Items() {
			if it.Day == Monday && it.MealType == Dinner {
				inSlot = append(inSlot, it)
			}
		}
		require.Len(t, inSlot, 1)
		assert.Equal(t, "r2", inSlot[0].RecipeID)
		assert.NotEqual(t, first.ID, inSlot[0].ID)

		u1, _ := s.Usage("r1")
		u2, _ := s.Usage("r2")
		assert.Equal(t, 1, u1.Count)
		assert.Equal(t, 1, u2.Count)
	})

	t.Run("EveryAddCounts", func(t *testing.T) {
		require.NoError(t, s.AddMeal(ctx, Tuesday, Lunch, "r2"))
		u2, _ := s.Usage("r2")
		assert.Equal(t, 2, u2.Count)
	})

	t.Run("InvalidArguments", func(t *testing.T) {
		assert.ErrorIs(t, s.AddMeal(ctx, "someday", Dinner, "r1"), ErrInvalidDay)
		assert.ErrorIs(t, s.AddMeal(ctx, Monday, "brunch", "r1"), ErrInvalidMealType)
		assert.ErrorIs(t, s.RemoveMeal(ctx, "x", Dinner), ErrInvalidDay)
	})
}

func TestAddMealEverySlot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore(), startClock())

	for _, d := range WeekDays {
		for _, m := range MealTypes {
			require.NoError(t, s.AddMeal(ctx, d, m, "a"))
			require.NoError(t, s.AddMeal(ctx, d, m, "b"))
		}
	}

	assert.Len(t, s.Items(), len(WeekDays)*len(MealTypes))
	for _, d := range WeekDays {
		for _, m := range MealTypes {
			assert.Equal(t, "b", s.Grid()[d][m], "%s %s", d, m)
		}
	}
	ua, _ := s.Usage("a")
	assert.Equal(t, len(WeekDays)*len(MealTypes), ua.Count)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore(), startClock())

	require.NoError(t, s.AddMeal(ctx, Monday, Dinner, "r1"))
	require.NoError(t, s.AddMeal(ctx, Friday, Lunch, "r2"))

	t.Run("RemoveMealKeepsUsage", func(t *testing.T) {
		require.NoError(t, s.RemoveMeal(ctx, Monday, Dinner))
		_, ok := s.Item(Monday, Dinner)
		assert.False(t, ok)
		u, _ := s.Usage("r1")
		assert.Equal(t, 1, u.Count)
		assert.Len(t, s.Items(), 1)
	})

	t.Run("RemoveEmptySlotIsNoop", func(t *testing.T) {
		require.NoError(t, s.RemoveMeal(ctx, Sunday, Snack))
		assert.Len(t, s.Items(), 1)
	})

	t.Run("ClearKeepsUsage", func(t *testing.T) {
		require.NoError(t, s.ClearMealPlan(ctx))
		assert.Empty(t, s.Items())
		assert.Empty(t, s.Grid())
		assert.Equal(t, []string{"r1", "r2"}, s.GetRecommendedRecipes(5))
	})
}

func TestGetRecommendedRecipes(t *testing.T) {
	ctx := context.Background()
	clock := startClock()
	s := newTestStore(t, storage.NewMemoryStore(), clock)

	assert.Empty(t, s.GetRecommendedRecipes(3))

	plan := []string{"pasta", "salad", "pasta", "soup", "salad", "curry"}
	for i, id := range plan {
		clock.Advance(time.Hour)
		require.NoError(t, s.AddMeal(ctx, WeekDays[i%len(WeekDays)], Dinner, id))
	}

	// pasta and salad have 2 uses; pasta was last used before salad.
	// soup and curry have 1 use; soup is older.
	assert.Equal(t, []string{"pasta", "salad", "soup", "curry"}, s.GetRecommendedRecipes(10))
	assert.Equal(t, []string{"pasta", "salad"}, s.GetRecommendedRecipes(2))
	assert.Empty(t, s.GetRecommendedRecipes(0))
	assert.Empty(t, s.GetRecommendedRecipes(-1))

	t.Run("TiesFallBackToID", func(t *testing.T) {
		s := newTestStore(t, storage.NewMemoryStore(), &fakeClock{t: clock.t})
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, s.AddMeal(ctx, Monday, Lunch, id))
		}
		assert.Equal(t, []string{"a", "b", "c"}, s.GetRecommendedRecipes(3))
	})

	t.Run("RemovedMealsStillRank", func(t *testing.T) {
		require.NoError(t, s.ClearMealPlan(ctx))
		assert.Len(t, s.GetRecommendedRecipes(10), 4)
	})
}

func TestLastUse(t *testing.T) {
	ctx := context.Background()
	clock := startClock()
	s := newTestStore(t, storage.NewMemoryStore(), clock)

	_, ok := s.GetLastUsedDate("r1")
	assert.False(t, ok)
	_, ok = s.DaysSinceLastUse("r1")
	assert.False(t, ok)

	require.NoError(t, s.AddMeal(ctx, Monday, Dinner, "r1"))
	last, ok := s.GetLastUsedDate("r1")
	require.True(t, ok)
	assert.True(t, last.Equal(clock.t))

	days, _ := s.DaysSinceLastUse("r1")
	assert.Equal(t, 0, days)

	clock.Advance(25 * time.Hour)
	days, _ = s.DaysSinceLastUse("r1")
	assert.Equal(t, 2, days)

	clock.Advance(23 * time.Hour)
	days, _ = s.DaysSinceLastUse("r1")
	assert.Equal(t, 2, days)

	t.Run("SortByLastUsed", func(t *testing.T) {
		require.NoError(t, s.AddMeal(ctx, Tuesday, Dinner, "r2"))
		clock.Advance(time.Minute)
		require.NoError(t, s.AddMeal(ctx, Wednesday, Dinner, "r3"))

		got := s.SortByLastUsed([]string{"new1", "r3", "r2", "new2", "r1"})
		assert.Equal(t, []string{"r1", "r2", "r3", "new1", "new2"}, got)
	})
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	clock := startClock()
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv, clock)

	for i, d := range WeekDays[:3] {
		require.NoError(t, s.AddMeal(ctx, d, Lunch, fmt.Sprintf("r%d", i)))
	}
	require.NoError(t, s.RemoveMeal(ctx, Monday, Lunch))

	t.Run("RoundTrip", func(t *testing.T) {
		reloaded := newTestStore(t, kv, clock)
		if diff := cmp.Diff(s.Snapshot(), reloaded.Snapshot()); diff != "" {
			t.Errorf("reloaded state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("FailedWriteIsAllOrNothing", func(t *testing.T) {
		broken := newTestStore(t, failingKV{kv}, clock)
		before := broken.Snapshot()

		require.Error(t, broken.AddMeal(ctx, Sunday, Dinner, "r9"))
		assert.Equal(t, before, broken.Snapshot())
		_, ok := broken.Usage("r9")
		assert.False(t, ok)
	})

	t.Run("CorruptBlobFallsBackToDefaults", func(t *testing.T) {
		bad := storage.NewMemoryStore()
		require.NoError(t, bad.Set(ctx, StorageKey, []byte("{oops")))
		fresh := newTestStore(t, bad, clock)
		assert.Empty(t, fresh.Items())
		assert.Empty(t, fresh.GetRecommendedRecipes(5))
	})
}
