// Package store persists named records as JSON text in a key-value backend.
//
// Reads and writes are best-effort: Load substitutes the caller's fallback when
// the backend fails or the stored text does not decode, and Save drops write
// failures after logging them. In-memory state stays authoritative until the
// next read.
package store

import (
	"encoding/json"
	"sync"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
)

// Backend is a synchronous string key-value store.
type Backend interface {
	// Get returns the stored value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Load decodes the record stored under key into a T. It returns fallback when
// the key is absent or empty, the backend read fails, or the text is not valid
// JSON for T.
func Load[T any](b Backend, key string, fallback T) T {
	raw, ok, err := b.Get(key)
	if err != nil {
		obs.Logger.Warn("store_read_failed", "key", key, "error", err)
		return fallback
	}
	if !ok || raw == "" {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		obs.Logger.Warn("store_record_corrupt", "key", key, "error", err)
		return fallback
	}
	return v
}

// Save encodes v as JSON and writes it under key. Failures are logged, not returned.
func Save(b Backend, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		obs.Logger.Warn("store_encode_failed", "key", key, "error", err)
		return
	}
	if err := b.Set(key, string(data)); err != nil {
		obs.Logger.Warn("store_write_failed", "key", key, "error", err)
	}
}

// Memory is an in-process Backend.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Delete removes key, as if the browser storage had been purged for it.
func (s *Memory) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}
