package telemetry

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forge-dev/forge/pkg/telemetry/schema"
	"github.com/forge-dev/forge/pkg/telemetry/schema/latest"
)

// memStore is an in-memory config store that round-trips values through
// JSON like the file-backed one.
type memStore struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
	writes int
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]json.RawMessage{}}
}

func newMemStoreWith(t *testing.T, telemetryJSON string) *memStore {
	t.Helper()
	s := newMemStore()
	require.True(t, json.Valid([]byte(telemetryJSON)), "invalid fixture")
	s.values[schema.Key] = json.RawMessage(telemetryJSON)
	return s
}

func (s *memStore) Raw(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[key]
	return raw, ok
}

func (s *memStore) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.values[key] = data
	s.writes++
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.writes++
	return nil
}

func (s *memStore) record(t *testing.T) *latest.Record {
	t.Helper()
	value := schema.Load(s)
	require.NotNil(t, value.Record, "expected a stored record, got %v", value.State)
	return value.Record
}

var errDiskFull = errors.New("disk full")
