package depreg

import (
	"fmt"
	"reflect"
)

// DependencyError is returned, or carried by the panic from the Must
// variants, when a dependency cannot be resolved. It wraps the factory's
// error, if any.
type DependencyError struct {
	Message        string
	KeyName        string
	ReferencedType reflect.Type
	SourceError    error
}

func (e *DependencyError) Error() string {
	key := storeKey{typ: e.ReferencedType, name: e.KeyName}
	if e.SourceError == nil {
		return fmt.Sprintf("%s: %v", e.Message, key)
	}
	return fmt.Sprintf("%s: %v (%v)", e.Message, key, e.SourceError)
}

func (e *DependencyError) Unwrap() error {
	return e.SourceError
}
