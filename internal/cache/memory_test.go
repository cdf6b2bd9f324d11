package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetMiss(t *testing.T) {
	m := NewMemory()

	data, ok := m.Get("missing", time.Minute)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	m.Set("film_301", []byte(`{"kinopoiskId":301}`))

	data, ok := m.Get("film_301", time.Minute)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"kinopoiskId":301}`), data)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	m.Set("film_301", []byte("x"))

	time.Sleep(20 * time.Millisecond)

	_, ok := m.Get("film_301", 10*time.Millisecond)
	assert.False(t, ok, "entry past TTL must be treated as absent")

	// The expired entry is evicted lazily.
	assert.Equal(t, 0, m.Len())
}

func TestMemoryTTLAppliedAtRead(t *testing.T) {
	m := NewMemory()
	m.Set("film_301", []byte("x"))

	time.Sleep(20 * time.Millisecond)

	// A larger TTL resurrects nothing — but the same entry is still valid
	// when read with a TTL longer than its age.
	_, ok := m.Get("film_301", time.Minute)
	assert.True(t, ok)

	_, ok = m.Get("film_301", time.Millisecond)
	assert.False(t, ok)
}

func TestMemoryLastWriteWins(t *testing.T) {
	m := NewMemory()
	m.Set("key", []byte("old"))
	m.Set("key", []byte("new"))

	data, ok := m.Get("key", time.Minute)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), data)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			m.Set(fmt.Sprintf("key_%d", n%5), []byte("v"))
		}(i)
		go func(n int) {
			defer wg.Done()
			m.Get(fmt.Sprintf("key_%d", n%5), time.Minute)
		}(i)
	}
	wg.Wait()
}
