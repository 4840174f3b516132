package sequence

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNextStartsAtOne(t *testing.T) {
	gen := NewMemory()

	v, err := gen.Next(context.Background(), "num_acta_global")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = gen.Next(context.Background(), "num_acta_global")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestMemoryNextIndependentCounters(t *testing.T) {
	gen := NewMemory()

	v1, err := gen.Next(context.Background(), "equipo_id")
	require.NoError(t, err)
	v2, err := gen.Next(context.Background(), "objeto_vario_id")
	require.NoError(t, err)

	assert.Equal(t, int64(1), v1)
	assert.Equal(t, int64(1), v2)
}

func TestMemoryNextSeeded(t *testing.T) {
	gen := NewMemory()
	gen.Seed("num_acta_global", 41)

	v, err := gen.Next(context.Background(), "num_acta_global")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

// N concurrent callers must receive exactly {k+1, ..., k+N}, no duplicates.
func TestMemoryNextConcurrent(t *testing.T) {
	const n = 200
	gen := NewMemory()
	gen.Seed("x", 100)

	results := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := gen.Next(context.Background(), "x")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	for i := 0; i < n; i++ {
		assert.Equal(t, int64(101+i), results[i])
	}
}
