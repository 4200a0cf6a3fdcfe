// ABOUTME: Get-or-compute memoization over any artifact store
// ABOUTME: Concurrent builds of the same key are collapsed with singleflight

package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// KeyManifest names the artifact recording the last committed scope
const KeyManifest = "manifest"

// Store loads and saves JSON-serializable artifacts by key
type Store interface {
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
}

// Clearer is implemented by stores that can drop a key
type Clearer interface {
	Clear(key string)
}

// Manifest lists the keys of the last committed scope
type Manifest struct {
	Scope string   `json:"scope"`
	Keys  []string `json:"keys"`
}

// Memo decides when a stored artifact is reused and when it is rebuilt
type Memo struct {
	store     Store
	group     *singleflight.Group
	overwrite bool
	preserved map[string]bool

	// Set on scoped memos only
	scope   string
	staging *staging
}

type staging struct {
	mu     sync.Mutex
	values map[string]any
	order  []string
	used   map[string]bool
}

// NewMemo wraps a store. With overwrite set, every key is rebuilt except the
// preserved ones, which are still loaded when present.
func NewMemo(store Store, overwrite bool, preserved ...string) *Memo {
	p := make(map[string]bool, len(preserved))
	for _, k := range preserved {
		p[k] = true
	}
	return &Memo{store: store, group: &singleflight.Group{}, overwrite: overwrite, preserved: p}
}

// Scope returns a memo whose keys live under scope. Built artifacts are held
// in memory until Commit, so a failed run never reaches the store.
func (m *Memo) Scope(scope string) *Memo {
	return &Memo{
		store:     m.store,
		group:     m.group,
		overwrite: m.overwrite,
		preserved: m.preserved,
		scope:     scope,
		staging:   &staging{values: make(map[string]any), used: make(map[string]bool)},
	}
}

func (m *Memo) storeKey(key string) string {
	if m.scope == "" {
		return key
	}
	return m.scope + "/" + key
}

func (m *Memo) reuse(key string) bool {
	return !m.overwrite || m.preserved[key]
}

// Commit saves staged artifacts and records the scope in the manifest. Keys of
// a previously committed scope are cleared when the store supports it.
func (m *Memo) Commit() error {
	if m.staging == nil {
		return nil
	}
	s := m.staging
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.order {
		if err := m.store.Save(k, s.values[k]); err != nil {
			return fmt.Errorf("saving %s: %w", k, err)
		}
	}

	var prev Manifest
	found, err := m.store.Load(KeyManifest, &prev)
	if err != nil {
		slog.Warn("Discarding unreadable manifest", "error", err)
		found = false
	}
	if c, ok := m.store.(Clearer); ok && found && prev.Scope != m.scope {
		for _, k := range prev.Keys {
			c.Clear(k)
		}
		slog.Info("Cleared artifacts of previous run", "scope", prev.Scope, "count", len(prev.Keys))
	}

	next := Manifest{Scope: m.scope, Keys: make([]string, 0, len(s.used))}
	for k := range s.used {
		next.Keys = append(next.Keys, k)
	}
	if err := m.store.Save(KeyManifest, next); err != nil {
		return fmt.Errorf("saving %s: %w", KeyManifest, err)
	}

	s.values = make(map[string]any)
	s.order = nil
	return nil
}

func (s *staging) get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[key] = true
	v, ok := s.values[key]
	return v, ok
}

func (s *staging) put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

type memoResult[T any] struct {
	value  T
	cached bool
}

// GetOrCompute returns the stored artifact for key, or builds and saves it.
// The boolean reports whether the value came from the store.
func GetOrCompute[T any](m *Memo, key string, build func() (T, error)) (T, bool, error) {
	sk := m.storeKey(key)
	v, err, _ := m.group.Do(sk, func() (any, error) {
		if m.staging != nil {
			if staged, ok := m.staging.get(sk); ok {
				return memoResult[T]{value: staged.(T)}, nil
			}
		}

		if m.reuse(key) {
			var stored T
			found, err := m.store.Load(sk, &stored)
			if err != nil {
				slog.Warn("Discarding unreadable artifact", "key", sk, "error", err)
			} else if found {
				return memoResult[T]{value: stored, cached: true}, nil
			}
		}

		built, err := build()
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", key, err)
		}
		if m.staging != nil {
			m.staging.put(sk, built)
		} else if err := m.store.Save(sk, built); err != nil {
			return nil, fmt.Errorf("saving %s: %w", key, err)
		}
		slog.Info("Artifact computed", "key", sk)
		return memoResult[T]{value: built}, nil
	})

	if err != nil {
		var zero T
		return zero, false, err
	}
	r := v.(memoResult[T])
	return r.value, r.cached, nil
}
