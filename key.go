package depreg

import (
	"fmt"
	"reflect"
)

// storeKey is the identity a dependency is stored under. The nominal type of
// the dependency and the key's name together make the identity, so two keys
// of the same type remain distinguishable ("primary" vs. "replica" database)
// while keys recreated with the same type and name alias the same entry.
type storeKey struct {
	typ  reflect.Type
	name string
}

func (k storeKey) String() string {
	if k.name == "" {
		return fmt.Sprintf("%v", k.typ)
	}
	return fmt.Sprintf("%s: %v", k.name, k.typ)
}

// Key identifies one dependency kind: a value type T, a name, and the default
// factory used to construct the value on first read. Keys are immutable after
// definition.
//
// Key identity is nominal, not by instance: equality is (type T + name). A key
// can therefore be recreated anywhere and resolution still finds the same
// cached value. The conventional use is a package-level variable:
//
//	var DatabaseKey = depreg.Define("main", func() *Database {
//	    return connect()
//	})
type Key[T any] struct {
	sk      storeKey
	factory func() (T, error)
}

// Define creates a key for a dependency of type T with an infallible default
// factory. The factory is not called here; construction happens on the first
// read of the key.
//
// A nil factory panics since the key could never be resolved.
func Define[T any](name string, factory func() T) Key[T] {
	if factory == nil {
		panic("depreg: Define requires a non-nil factory")
	}
	return DefineWithError[T](name, func() (T, error) {
		return factory(), nil
	})
}

// DefineWithError creates a key for a dependency of type T whose default
// factory can fail. A factory error is returned from the read that triggered
// construction, wrapped in a *DependencyError, and leaves nothing cached so a
// later read retries the factory.
func DefineWithError[T any](name string, factory func() (T, error)) Key[T] {
	if factory == nil {
		panic("depreg: DefineWithError requires a non-nil factory")
	}
	return Key[T]{
		sk: storeKey{
			typ:  reflect.TypeOf((*T)(nil)).Elem(),
			name: name,
		},
		factory: factory,
	}
}

// Name returns the name the key was defined with.
func (k Key[T]) Name() string {
	return k.sk.name
}

func (k Key[T]) String() string {
	return k.sk.String()
}

// checkKey guards against the zero Key, which has no type or factory and can
// only come from an uninitialized variable or field.
func checkKey[T any](k Key[T]) {
	if k.sk.typ == nil {
		panic("depreg: use of zero Key - keys must be created with Define or DefineWithError")
	}
}
