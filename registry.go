package depreg

import (
	"context"
	"sync"

	"github.com/gburgyan/go-timing"
)

// TimingMode controls whether factory construction is timed.
type TimingMode int

const (
	// TimingDisable will disable timing of all factory construction.
	TimingDisable TimingMode = iota

	// TimingFactories will start a timing context for each default factory
	// that is called. This is useful to see where dependency construction
	// time is being spent on first access.
	TimingFactories
)

var EnableTiming = TimingDisable

// Registry is a cache of lazily constructed singleton dependencies. Values
// are keyed by Key and constructed on demand by the key's default factory,
// at most once per key until the key is reset. Any value can be overridden
// or reset explicitly, which is primarily useful in tests.
//
// All operations are safe for concurrent use. Most code uses the process-wide
// registry through the package-level Get, Set, Reset, and ResetAll functions;
// New exists for code that wants a fully isolated registry.
//
// Because methods cannot introduce type parameters, the typed operations on a
// specific Registry are package functions taking the registry first: Resolve,
// MustResolve, Override, ResetKey, Peek, and Preload.
type Registry struct {
	store store

	timingOnce sync.Once
	timingRoot *timing.Context
}

// New creates an empty registry independent of the default one.
func New() *Registry {
	return &Registry{}
}

// ResetAll removes every cached value. The next read of any key reconstructs
// its value via the key's factory. This is the blunt instrument for restoring
// a clean slate between test cases.
func (r *Registry) ResetAll() {
	r.store.resetAll()
	log().Debug().Msg("registry reset")
}

// TimingReport returns the timing report accumulated while EnableTiming was
// set to TimingFactories, or an empty string if nothing was ever timed.
func (r *Registry) TimingReport() string {
	if r.timingRoot == nil {
		return ""
	}
	return r.timingRoot.String()
}

func (r *Registry) timingContext() context.Context {
	r.timingOnce.Do(func() {
		r.timingRoot = timing.Root(context.Background())
	})
	return r.timingRoot
}

// Resolve returns the value for k, constructing it with k's default factory
// if it isn't cached yet. Concurrent calls for the same key invoke the
// factory at most once and all return the identical cached value.
//
// A factory error is returned wrapped in a *DependencyError and leaves the
// key uncached so a later call retries.
func Resolve[T any](r *Registry, k Key[T]) (T, error) {
	checkKey(k)
	raw, created, err := r.store.getOrCreate(k.sk, func() (any, error) {
		if EnableTiming == TimingFactories {
			_, complete := timing.Start(r.timingContext(), k.String())
			defer complete()
		}
		v, err := k.factory()
		if err != nil {
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, &DependencyError{
			Message:        "error constructing dependency",
			KeyName:        k.sk.name,
			ReferencedType: k.sk.typ,
			SourceError:    err,
		}
	}
	if created {
		log().Debug().Stringer("key", k.sk).Msg("dependency constructed")
	}
	return cast[T](k, raw)
}

// MustResolve behaves like Resolve except it panics if the value cannot be
// constructed. Factory failures are typically unrecoverable configuration
// problems, so this presents the simplified interface for the common case.
func MustResolve[T any](r *Registry, k Key[T]) T {
	v, err := Resolve(r, k)
	if err != nil {
		panic(err)
	}
	return v
}

// Override unconditionally stores v for k, replacing any cached value. The
// key's default factory is not called, now or later, until the key is reset.
// With concurrent overrides of the same key the last writer wins.
func Override[T any](r *Registry, k Key[T], v T) {
	checkKey(k)
	r.store.set(k.sk, v)
	log().Debug().Stringer("key", k.sk).Msg("dependency overridden")
}

// ResetKey removes the cached value for k if present. The next read of k
// reconstructs via its factory.
func ResetKey[T any](r *Registry, k Key[T]) {
	checkKey(k)
	r.store.reset(k.sk)
	log().Debug().Stringer("key", k.sk).Msg("dependency reset")
}

// Peek returns the cached value for k if one exists. It never constructs
// anything: if the key has no cached value the second result is false. A
// stored value of the wrong type is a programming error, not absence, and
// panics with a *DependencyError.
func Peek[T any](r *Registry, k Key[T]) (T, bool) {
	checkKey(k)
	raw, ok := r.store.lookup(k.sk)
	if !ok {
		var zero T
		return zero, false
	}
	v, err := cast[T](k, raw)
	if err != nil {
		panic(err)
	}
	return v, true
}

// cast is the checked boundary between the type-erased store and the typed
// caller. The key identity includes the type, so a mismatch means the store
// was corrupted rather than a caller mistake, but it must never surface as a
// silently wrong value.
func cast[T any](k Key[T], raw any) (T, error) {
	if raw == nil {
		// A stored nil interface value is legitimate; the zero value of T
		// is the only faithful representation of it.
		var zero T
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, &DependencyError{
			Message:        "stored dependency has unexpected type",
			KeyName:        k.sk.name,
			ReferencedType: k.sk.typ,
		}
	}
	return v, nil
}
