package depreg

import (
	"sort"
	"sync"
)

// entry holds the cached value for one key. The entry's own lock is held
// across the check-and-construct-and-insert sequence so a factory runs at
// most once per key between resets, while construction on one key never
// blocks reads of other keys.
type entry struct {
	mu    sync.Mutex
	ready bool
	gone  bool
	value any
}

// store is the lazy key to value cache behind a Registry. The map lock is
// only ever held for entry lookup and insertion, never across a factory call.
type store struct {
	mu      sync.Mutex
	entries map[storeKey]*entry
}

func (s *store) entry(key storeKey) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = map[storeKey]*entry{}
	}
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// discard removes an entry whose construction failed, but only if the map
// still holds that same entry. A concurrent set or reset may have already
// replaced it, and their outcome wins. Called with the entry's lock held;
// that is safe because nothing blocks on an entry lock while holding the
// map lock.
func (s *store) discard(key storeKey, e *entry) {
	s.mu.Lock()
	if s.entries[key] == e {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

// getOrCreate returns the cached value for key, constructing it with factory
// if absent. The factory runs under the entry lock, so concurrent callers for
// the same key block until the first one finishes and then observe its value.
// The returned flag reports whether this call performed the construction.
//
// A factory error or panic propagates to the caller and evicts the entry so
// a subsequent call retries the factory. Nothing is ever cached for a failed
// construction.
func (s *store) getOrCreate(key storeKey, factory func() (any, error)) (any, bool, error) {
	var e *entry
	for {
		e = s.entry(key)
		e.mu.Lock()
		if !e.gone {
			break
		}
		// The construction this entry was waiting on failed and evicted it
		// while we were queued on its lock. Constructing into it now would
		// cache nothing, so start over against the map.
		e.mu.Unlock()
	}
	if e.ready {
		v := e.value
		e.mu.Unlock()
		return v, false, nil
	}

	stored := false
	defer func() {
		if stored {
			return
		}
		// Failed construction: evict so the key isn't poisoned. Eviction
		// happens before the entry is marked gone and unlocked so a waiter
		// that retries always finds a fresh entry in the map.
		s.discard(key, e)
		e.gone = true
		e.mu.Unlock()
	}()

	v, err := factory()
	if err != nil {
		return nil, false, err
	}

	e.value = v
	e.ready = true
	stored = true
	e.mu.Unlock()
	return v, true, nil
}

// lookup returns the cached value for key without constructing anything.
func (s *store) lookup(key storeKey) (any, bool) {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return nil, false
	}
	return e.value, true
}

// set unconditionally stores value under key. The entry is replaced wholesale
// so an in-flight construction on the old entry can finish for its own
// callers without clobbering the newly set value.
func (s *store) set(key storeKey, value any) {
	s.mu.Lock()
	if s.entries == nil {
		s.entries = map[storeKey]*entry{}
	}
	s.entries[key] = &entry{ready: true, value: value}
	s.mu.Unlock()
}

// reset removes key's entry if present. The next getOrCreate for the key
// reconstructs via its factory.
func (s *store) reset(key storeKey) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// resetAll removes every entry.
func (s *store) resetAll() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

// snapshot returns a sorted description of every entry for diagnostics. An
// entry whose lock is currently contended is being constructed right now.
func (s *store) snapshot() []string {
	s.mu.Lock()
	keyed := make(map[storeKey]*entry, len(s.entries))
	for k, e := range s.entries {
		keyed[k] = e
	}
	s.mu.Unlock()

	var lines []string
	for k, e := range keyed {
		state := "constructing"
		if e.mu.TryLock() {
			if e.ready {
				state = "constructed"
			} else {
				state = "pending"
			}
			e.mu.Unlock()
		}
		lines = append(lines, k.String()+" - "+state)
	}
	sort.Strings(lines)
	return lines
}
