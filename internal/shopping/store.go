package shopping

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-box/internal/storage"
)

const (
	// StorageKey is the key the shopping list snapshot is persisted under.
	StorageKey = "shopping-list-storage"

	snapshotVersion = 1
)

func defaultState() State {
	return State{Items: []Item{}}
}

// Store owns the shopping list. Names are unique ignoring case.
type Store struct {
	mu    sync.Mutex
	items []Item
	kv    storage.Store
	log   *zap.Logger
}

// NewStore loads the persisted shopping list from kv.
func NewStore(ctx context.Context, kv storage.Store, log *zap.Logger) (*Store, error) {
	log = log.Named("shopping-store")
	state, err := storage.LoadSnapshot(ctx, kv, StorageKey, snapshotVersion, defaultState, log)
	if err != nil {
		return nil, err
	}
	return &Store{items: state.Items, kv: kv, log: log}, nil
}

func (s *Store) commit(ctx context.Context, next []Item) error {
	if err := storage.SaveSnapshot(ctx, s.kv, StorageKey, snapshotVersion, State{Items: next}); err != nil {
		return err
	}
	s.items = next
	return nil
}

// merge applies the add rule for one name to items and reports whether anything changed.
// A completed item with the same name is reactivated, an active one is left alone.
func merge(items []Item, name string) ([]Item, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return items, false
	}

	i := slices.IndexFunc(items, func(it Item) bool { return strings.EqualFold(it.Name, name) })
	if i >= 0 {
		if !items[i].Completed {
			return items, false
		}
		items[i].Completed = false
		return items, true
	}
	return append(items, Item{ID: uuid.NewString(), Name: name}), true
}

// AddItem adds name to the list, or reactivates a completed entry with the same name.
func (s *Store) AddItem(ctx context.Context, name string) error {
	return s.AddItems(ctx, []string{name})
}

// AddItems adds every name in order using the AddItem rule and persists once.
func (s *Store) AddItems(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	changed := false
	for _, name := range names {
		var ok bool
		next, ok = merge(next, name)
		changed = changed || ok
	}
	if !changed {
		return nil
	}
	return s.commit(ctx, next)
}

// RemoveItem deletes the item with id.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.items), func(it Item) bool { return it.ID == id })
	return s.commit(ctx, next)
}

// ToggleItem flips the completed flag of the item with id.
func (s *Store) ToggleItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
		}
	}
	return s.commit(ctx, next)
}

// ClearCompletedItems drops every completed item.
func (s *Store) ClearCompletedItems(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.items), func(it Item) bool { return it.Completed })
	return s.commit(ctx, next)
}

// Items returns the list in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// ActiveItems returns the items still to buy.
func (s *Store) ActiveItems() []Item {
	return s.filter(func(it Item) bool { return !it.Completed })
}

// CompletedItems returns the items already bought.
func (s *Store) CompletedItems() []Item {
	return s.filter(func(it Item) bool { return it.Completed })
}

// ItemByPosition returns the n-th item (1-based) as shown by Items.
func (s *Store) ItemByPosition(n int) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.items) {
		return Item{}, false
	}
	return s.items[n-1], true
}

func (s *Store) filter(keep func(Item) bool) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Item{}
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
