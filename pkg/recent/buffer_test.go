package recent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New[string, int](0).Cap())
	assert.Equal(t, 3, New[string, int](3).Cap())
}

func TestTakeIsOneShot(t *testing.T) {
	b := New[string, int](DefaultCapacity)
	b.Push("report", 1)

	v, ok := b.Take("report")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = b.Take("report")
	assert.False(t, ok, "entry must be consulted at most once")
	assert.Equal(t, 0, b.Len())
}

func TestTakeReturnsOldestForKey(t *testing.T) {
	b := New[string, string](DefaultCapacity)
	b.Push("a", "first")
	b.Push("b", "other")
	b.Push("a", "second")

	v, ok := b.Take("a")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = b.Take("a")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, b.Len())
}

func TestPushEvictsOldest(t *testing.T) {
	b := New[string, int](3)
	for i := 0; i < 5; i++ {
		b.Push(fmt.Sprintf("k%d", i), i)
	}

	assert.Equal(t, 3, b.Len())

	_, ok := b.Take("k0")
	assert.False(t, ok, "k0 should have been evicted")
	_, ok = b.Take("k1")
	assert.False(t, ok, "k1 should have been evicted")

	for i := 2; i < 5; i++ {
		v, ok := b.Take(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestTakeMissing(t *testing.T) {
	b := New[string, int](DefaultCapacity)
	v, ok := b.Take("nothing")
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestConcurrentAccess(t *testing.T) {
	b := New[int, int](DefaultCapacity)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Push(g, i)
				b.Take(g)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, b.Len(), DefaultCapacity)
}
