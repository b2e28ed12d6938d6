package depreg

import "strings"

// Status is a diagnostic tool that returns a string describing the state of
// the registry: each key that holds an entry and whether its value has been
// constructed, is mid-construction, or was reserved but never built.
//
// Note that keys that have been defined but never read or set do not appear;
// a registry only knows about a key once an operation touches it.
func (r *Registry) Status() string {
	lines := r.store.snapshot()
	if len(lines) == 0 {
		return "empty registry"
	}
	return strings.Join(lines, "\n")
}
