package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// envelope wraps every persisted store snapshot with its schema version.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// SaveSnapshot serializes state into a versioned envelope and writes it under key.
func SaveSnapshot[T any](ctx context.Context, s Store, key string, version int, state T) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal %s state: %w", key, err)
	}
	data, err := json.Marshal(envelope{Version: version, State: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// LoadSnapshot reads the snapshot stored under key.
// A missing blob, malformed JSON or a version other than version yields defaults().
// Fields absent from a valid snapshot keep their default values.
// Only backend errors are returned.
func LoadSnapshot[T any](ctx context.Context, s Store, key string, version int, defaults func() T, log *zap.Logger) (T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if data == nil {
		return defaults(), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn("malformed snapshot, using defaults", zap.String("key", key), zap.Error(err))
		return defaults(), nil
	}
	if env.Version != version {
		log.Warn("unknown snapshot version, using defaults",
			zap.String("key", key),
			zap.Int("found", env.Version),
			zap.Int("expected", version))
		return defaults(), nil
	}

	state := defaults()
	if len(env.State) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(env.State, &state); err != nil {
		log.Warn("malformed snapshot state, using defaults", zap.String("key", key), zap.Error(err))
		return defaults(), nil
	}
	return state, nil
}
