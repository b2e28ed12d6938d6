// Package depreg provides a process-wide, type-safe registry of lazily
// constructed singleton dependencies. A dependency is identified by a Key
// that pairs a value type with a default factory; the first read of a key
// constructs its value, at most once even under concurrent access, and every
// later read returns the same cached instance. Any key can be overridden
// with Set or cleared with Reset, which makes substituting test doubles and
// restoring a clean slate between test cases trivial.
//
// The Registry object has comprehensive documentation about how resolution
// works. There are also helper global functions operating on the default
// registry that make using this more concise.
package depreg
