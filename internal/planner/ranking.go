package planner

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// GetRecommendedRecipes ranks every recipe that was ever planned: most planned first, and
// among equals the one planned longest ago first, so favorites keep rotating. Ties on both
// fall back to the recipe id to keep the order stable.
//
// Usage is never decremented, so recipes removed from the plan keep their weight.
func (s *Store) GetRecommendedRecipes(count int) []string {
	if count <= 0 {
		return []string{}
	}

	s.mu.Lock()
	type ranked struct {
		id string
		Usage
	}
	candidates := make([]ranked, 0, len(s.state.Usage))
	for id, u := range s.state.Usage {
		if u.Count > 0 {
			candidates = append(candidates, ranked{id: id, Usage: u})
		}
	}
	s.mu.Unlock()

	slices.SortFunc(candidates, func(a, b ranked) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := a.LastUsed.Compare(b.LastUsed); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids
}

// GetLastUsedDate returns when recipeID was last planned.
func (s *Store) GetLastUsedDate(recipeID string) (time.Time, bool) {
	u, ok := s.Usage(recipeID)
	if !ok {
		return time.Time{}, false
	}
	return u.LastUsed, true
}

// DaysSinceLastUse rounds the time since recipeID was last planned up to whole days.
func (s *Store) DaysSinceLastUse(recipeID string) (int, bool) {
	last, ok := s.GetLastUsedDate(recipeID)
	if !ok {
		return 0, false
	}
	elapsed := s.now().Sub(last)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(math.Ceil(elapsed.Hours() / 24)), true
}

// SortByLastUsed orders ids so the recipe planned longest ago comes first.
// Never planned recipes go last in their original order.
func (s *Store) SortByLastUsed(ids []string) []string {
	s.mu.Lock()
	usage := make(map[string]time.Time, len(ids))
	for _, id := range ids {
		if u, ok := s.state.Usage[id]; ok {
			usage[id] = u.LastUsed
		}
	}
	s.mu.Unlock()

	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int {
		ta, okA := usage[a]
		tb, okB := usage[b]
		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return out
}
