// Package chaos implements the hidden chaos mode: a tap-counter unlock and random meal picks.
package chaos

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipe-box/internal/storage"
)

const (
	// StorageKey is the key the chaos mode snapshot is persisted under.
	StorageKey = "chaos-mode-storage"
	// RequiredTaps is how many secret taps unlock chaos mode.
	RequiredTaps = 7

	snapshotVersion = 1
)

// State is the persisted chaos mode state.
type State struct {
	IsEnabled      bool `json:"is_enabled"`
	SecretTapCount int  `json:"secret_tap_count"`
}

func defaultState() State {
	return State{}
}

// Catalog is the subset of the recipe catalog chaos mode draws from.
type Catalog interface {
	RecipeIDs() []string
	CategoryIDs() []string
}

// Store owns the chaos mode flag and the secret tap counter.
type Store struct {
	mu      sync.Mutex
	state   State
	kv      storage.Store
	catalog Catalog
	log     *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Store.
type Option func(*Store)

// WithRand makes random picks deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// NewStore loads the persisted chaos mode state from kv.
func NewStore(ctx context.Context, kv storage.Store, catalog Catalog, log *zap.Logger, opts ...Option) (*Store, error) {
	log = log.Named("chaos-store")
	state, err := storage.LoadSnapshot(ctx, kv, StorageKey, snapshotVersion, defaultState, log)
	if err != nil {
		return nil, err
	}
	seed := uint64(time.Now().UnixNano())
	s := &Store{
		state:   state,
		kv:      kv,
		catalog: catalog,
		log:     log,
		rng:     rand.New(rand.NewPCG(seed, seed>>1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) commit(ctx context.Context, next State) error {
	if err := storage.SaveSnapshot(ctx, s.kv, StorageKey, snapshotVersion, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsEnabled reports whether chaos mode is on.
func (s *Store) IsEnabled() bool {
	return s.State().IsEnabled
}

// Toggle flips chaos mode and resets the tap counter.
func (s *Store) Toggle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := State{IsEnabled: !s.state.IsEnabled}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.Info("chaos mode toggled", zap.Bool("enabled", next.IsEnabled))
	return nil
}

// IncrementSecretTapCount counts one secret tap. Reaching RequiredTaps turns chaos mode on and
// resets the counter. Taps while chaos mode is on are ignored.
func (s *Store) IncrementSecretTapCount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsEnabled {
		return nil
	}

	next := s.state
	next.SecretTapCount++
	if next.SecretTapCount >= RequiredTaps {
		next = State{IsEnabled: true}
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	if next.IsEnabled {
		s.log.Info("chaos mode unlocked")
	}
	return nil
}

// ResetSecretTapCount sets the tap counter back to zero.
func (s *Store) ResetSecretTapCount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.SecretTapCount = 0
	return s.commit(ctx, next)
}
