package depreg

import "sync"

// Process-wide registry instance and initialization guard. Creation is
// explicit and on first use so there is no static-initialization-order
// dependence between packages that define keys.
var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, creating it on first call.
// Application code normally uses the package-level Get, Set, Reset, and
// ResetAll helpers instead of touching the registry directly.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Get returns the value for k from the default registry, constructing it
// with k's default factory on first access. It behaves exactly like
// GetWithError except it panics if the factory fails. A failed default
// factory is nearly always a fatal misconfiguration, so this presents the
// simplified interface for getting required dependencies.
func Get[T any](k Key[T]) T {
	return MustResolve(Default(), k)
}

// GetWithError returns the value for k from the default registry,
// constructing it on first access. If the factory fails it returns the error
// wrapped in a *DependencyError and leaves the key uncached so a later call
// retries.
func GetWithError[T any](k Key[T]) (T, error) {
	return Resolve(Default(), k)
}

// Set overrides the value for k in the default registry, bypassing the
// default factory entirely. The primary use is substituting a test double
// before the code under test first reads the key.
func Set[T any](k Key[T], v T) {
	Override(Default(), k, v)
}

// Reset removes the cached value for k from the default registry. The next
// Get reconstructs via the key's factory.
func Reset[T any](k Key[T]) {
	ResetKey(Default(), k)
}

// ResetAll removes every cached value from the default registry. Typically
// called from test teardown to guarantee isolation between test cases.
func ResetAll() {
	Default().ResetAll()
}

// Warm starts construction of k's value in the default registry on a
// background goroutine. See Preload.
func Warm[T any](k Key[T]) {
	Preload(Default(), k)
}

// Status returns a diagnostic description of the default registry.
func Status() string {
	return Default().Status()
}
