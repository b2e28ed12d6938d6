package depreg

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreload_ConstructsInBackground(t *testing.T) {
	r := New()
	var calls int64
	constructed := make(chan struct{})
	k := Define("widget", func() *testWidget {
		atomic.AddInt64(&calls, 1)
		defer close(constructed)
		return &testWidget{val: 42}
	})

	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))

	Preload(r, k)
	<-constructed

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	// The read blocks until the preload has cached the value, then returns
	// the same instance without another construction.
	w := MustResolve(r, k)
	assert.Equal(t, 42, w.val)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestPreload_ConcurrentReadBlocksOnSameConstruction(t *testing.T) {
	r := New()
	var calls int64
	started := make(chan struct{})
	release := make(chan struct{})
	k := Define("widget", func() *testWidget {
		atomic.AddInt64(&calls, 1)
		close(started)
		<-release
		return &testWidget{val: 42}
	})

	Preload(r, k)
	<-started

	// Read while the factory is still running, then unblock it. The read
	// waits on the same construction instead of starting a second one.
	done := make(chan *testWidget)
	go func() {
		done <- MustResolve(r, k)
	}()
	close(release)

	w := <-done
	assert.Equal(t, 42, w.val)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestPreload_ErrorLeavesKeyUncached(t *testing.T) {
	r := New()
	var calls int64
	k := DefineWithError("widget", func() (*testWidget, error) {
		atomic.AddInt64(&calls, 1)
		if atomic.LoadInt64(&calls) == 1 {
			return nil, fmt.Errorf("expected error")
		}
		return &testWidget{val: 7}, nil
	})

	Preload(r, k)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	// The failed preload cached nothing; this read retries and succeeds.
	w := MustResolve(r, k)
	assert.Equal(t, 7, w.val)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestPreload_PanicLeavesKeyUncached(t *testing.T) {
	r := New()
	var calls int64
	k := Define("widget", func() *testWidget {
		atomic.AddInt64(&calls, 1)
		if atomic.LoadInt64(&calls) == 1 {
			panic("expected panic")
		}
		return &testWidget{val: 3}
	})

	Preload(r, k)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	w := MustResolve(r, k)
	assert.Equal(t, 3, w.val)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestWarm_UsesDefaultRegistry(t *testing.T) {
	t.Cleanup(ResetAll)

	var calls int64
	k := Define("warm-widget", func() *testWidget {
		atomic.AddInt64(&calls, 1)
		return &testWidget{val: 6}
	})

	Warm(k)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, 6, Get(k).val)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}
