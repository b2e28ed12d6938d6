package depreg

// Injected is a field-like handle bound to one key. A consumer embeds it as
// a struct field so the dependency reads like a property:
//
//	type Checkout struct {
//	    DB depreg.Injected[*Database]
//	}
//
//	c := Checkout{DB: depreg.Inject(DatabaseKey)}
//	c.DB.Get().Query(...)
//
// Binding the handle never constructs anything; the first Get on the handle
// is what triggers the key's factory. The handle holds no cache of its own -
// Get and Set forward to the registry, so the handle and direct key access
// always observe the same value.
type Injected[T any] struct {
	key Key[T]
	reg *Registry
}

// Inject binds a handle for k to the default registry. The registry itself
// is looked up at access time, not here, so Inject is safe in package-level
// initializers.
func Inject[T any](k Key[T]) Injected[T] {
	checkKey(k)
	return Injected[T]{key: k}
}

// InjectIn binds a handle for k to a specific registry.
func InjectIn[T any](r *Registry, k Key[T]) Injected[T] {
	checkKey(k)
	return Injected[T]{key: k, reg: r}
}

// Get returns the dependency, constructing it on first access. It panics if
// the factory fails, like Get on the package level. The zero Injected panics
// since it has no key bound.
func (i Injected[T]) Get() T {
	return MustResolve(i.registry(), i.key)
}

// GetWithError returns the dependency, constructing it on first access, and
// reports a factory failure instead of panicking.
func (i Injected[T]) GetWithError() (T, error) {
	return Resolve(i.registry(), i.key)
}

// Set overrides the dependency's value, bypassing the factory.
func (i Injected[T]) Set(v T) {
	Override(i.registry(), i.key, v)
}

// Key returns the key the handle is bound to.
func (i Injected[T]) Key() Key[T] {
	return i.key
}

func (i Injected[T]) registry() *Registry {
	checkKey(i.key)
	if i.reg != nil {
		return i.reg
	}
	return Default()
}
