// Package storage provides the key-value backends the state stores persist their snapshots to.
package storage

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Store is an opaque blob store keyed by name.
// Get returns nil, nil for a missing key and Remove of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// WriteRecorder receives one call per successful Set.
type WriteRecorder interface {
	RecordWrite(ctx context.Context, key string, size int, latency time.Duration) error
}

type recorders []WriteRecorder

// Recorders fans every write out to each of rs.
func Recorders(rs ...WriteRecorder) WriteRecorder {
	return recorders(rs)
}

func (rs recorders) RecordWrite(ctx context.Context, key string, size int, latency time.Duration) error {
	var errs []error
	for _, r := range rs {
		if err := r.RecordWrite(ctx, key, size, latency); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type instrumentedStore struct {
	Store
	recorder WriteRecorder
	log      *zap.Logger
}

// Instrument wraps s so that every successful write is reported to recorder.
// Recorder failures are logged and never fail the write itself.
func Instrument(s Store, recorder WriteRecorder, log *zap.Logger) Store {
	return &instrumentedStore{Store: s, recorder: recorder, log: log.Named("storage-metrics")}
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	if err := s.Store.Set(ctx, key, value); err != nil {
		return err
	}
	if err := s.recorder.RecordWrite(ctx, key, len(value), time.Since(start)); err != nil {
		s.log.Warn("failed to record write metric", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// present keeps a found but empty blob distinct from a missing key, which Get reports as nil.
func present(value []byte) []byte {
	if value == nil {
		return []byte{}
	}
	return value
}
