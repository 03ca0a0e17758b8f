package ident

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReviewIDSequentialOrder(t *testing.T) {
	g := NewGenerator()

	ids := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		ids = append(ids, g.NewReviewID())
	}

	require.True(t, sort.StringsAreSorted(ids), "ids must sort consistent with call order")

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
		require.Len(t, id, 26)
	}
}

func TestNewReviewIDConcurrentUniqueness(t *testing.T) {
	g := NewGenerator()

	const workers = 16
	const perWorker = 500

	var mu sync.Mutex
	all := make([]string, 0, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.NewReviewID())
			}
			mu.Lock()
			all = append(all, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, len(all))
	for _, id := range all {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	require.Len(t, all, workers*perWorker)
}
