package depreg

import "testing"

func BenchmarkResolveCached(b *testing.B) {
	r := New()
	k := Define("widget", func() *testWidget { return &testWidget{val: 42} })
	MustResolve(r, k)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MustResolve(r, k)
	}
}

func BenchmarkResolveCachedParallel(b *testing.B) {
	r := New()
	k := Define("widget", func() *testWidget { return &testWidget{val: 42} })
	MustResolve(r, k)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = MustResolve(r, k)
		}
	})
}

func BenchmarkInjectedGet(b *testing.B) {
	r := New()
	k := Define("widget", func() *testWidget { return &testWidget{val: 42} })
	handle := InjectIn(r, k)
	handle.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = handle.Get()
	}
}

func BenchmarkOverride(b *testing.B) {
	r := New()
	k := Define("widget", func() *testWidget { return &testWidget{} })
	w := &testWidget{val: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Override(r, k, w)
	}
}
