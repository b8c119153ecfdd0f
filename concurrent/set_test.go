package concurrent_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/talagrand/CsWinRT/concurrent"
)

func TestSetZeroValue(t *testing.T) {
	var cs concurrent.Set[string]
	require.True(t, cs.Empty())
	require.Equal(t, 0, cs.Size())

	out := cs.Consume()
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestSetDuplicateInsertIdempotent(t *testing.T) {
	var cs concurrent.Set[string]
	cs.Insert("v")
	require.Equal(t, 1, cs.Size())
	cs.Insert("v")
	require.Equal(t, 1, cs.Size())

	out := cs.Consume()
	require.Len(t, out, 1)
	_, ok := out["v"]
	require.True(t, ok)
}

func TestSetConsumeDrains(t *testing.T) {
	var cs concurrent.Set[int]
	for i := 0; i < 100; i++ {
		cs.Insert(i)
	}
	require.Equal(t, 100, cs.Size())

	out := cs.Consume()
	require.Len(t, out, 100)
	for i := 0; i < 100; i++ {
		_, ok := out[i]
		require.True(t, ok)
	}

	require.True(t, cs.Empty())
	again := cs.Consume()
	require.NotNil(t, again)
	require.Empty(t, again)
}

func TestSetNoCrossPhaseLeakage(t *testing.T) {
	var cs concurrent.Set[int]
	cs.Insert(1)
	cs.Insert(2)
	first := cs.Consume()
	require.Len(t, first, 2)

	cs.Insert(3)
	second := cs.Consume()
	require.Len(t, second, 1)
	require.Len(t, first, 2)
	_, leaked := first[3]
	require.False(t, leaked)
}

// Distinct values per goroutine: everything survives the join.
func TestSetConcurrentStress(t *testing.T) {
	const threads = 8
	const perThread = 2000

	var cs concurrent.Set[string]
	var wg sync.WaitGroup
	wg.Add(threads)
	for tid := 0; tid < threads; tid++ {
		go func(tid int) {
			defer wg.Done()
			for i := 0; i < perThread; i++ {
				cs.Insert(fmt.Sprintf("thread%d-%d", tid, i))
			}
		}(tid)
	}
	wg.Wait()

	out := cs.Consume()
	require.Len(t, out, threads*perThread)
	require.True(t, cs.Empty())
}

// Every goroutine inserts the same value range: duplicates collapse and the
// result holds each value exactly once.
func TestSetConcurrentDedupe(t *testing.T) {
	const threads = 8
	const values = 2000

	var cs concurrent.Set[int]
	var wg sync.WaitGroup
	wg.Add(threads)
	for tid := 0; tid < threads; tid++ {
		go func() {
			defer wg.Done()
			for i := 0; i < values; i++ {
				cs.Insert(i)
			}
		}()
	}
	wg.Wait()

	out := cs.Consume()
	require.Len(t, out, values)
	for i := 0; i < values; i++ {
		_, ok := out[i]
		require.True(t, ok)
	}
}
