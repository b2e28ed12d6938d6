package depreg

// Preload starts construction of k's value on a new goroutine so it is ready
// before the first caller needs it. If the value is already cached this does
// nothing beyond the goroutine overhead; a concurrent Resolve for the same
// key simply blocks on the slot until the preload finishes and then returns
// the same instance.
func Preload[T any](r *Registry, k Key[T]) {
	checkKey(k)
	go func() {
		defer func() {
			// Catch panics. The best we can do is log and ignore this since
			// the original call has long returned. The dependency remains
			// unset, so the next read retries the factory and either succeeds
			// or fails again in a place that can actually report it.
			if rec := recover(); rec != nil {
				log().Error().Stringer("key", k.sk).Interface("panic", rec).
					Msg("panic preloading dependency")
			}
		}()
		if _, err := Resolve(r, k); err != nil {
			// Same reasoning as the panic case: the failure is left uncached
			// and surfaces properly on the next read.
			log().Error().Stringer("key", k.sk).Err(err).
				Msg("error preloading dependency")
		}
	}()
}
