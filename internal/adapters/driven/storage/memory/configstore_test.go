package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("storage.backend", "memory"))
	require.NoError(t, store.Set("storage.backend", "sqlite"))

	val, ok := store.Get("storage.backend")
	assert.True(t, ok)
	assert.Equal(t, "sqlite", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("catalog.url", "https://example.test/blocks")
	_ = store.Set("autosave.delay_ms", 500)
	_ = store.Set("autosave.delay_big", int64(900))
	_ = store.Set("catalog.requests_per_second", 1.5)
	_ = store.Set("autosave.enabled", true)

	assert.Equal(t, "https://example.test/blocks", store.GetString("catalog.url"))
	assert.Equal(t, 500, store.GetInt("autosave.delay_ms"))
	assert.Equal(t, 900, store.GetInt("autosave.delay_big"))
	assert.Equal(t, 1, store.GetInt("catalog.requests_per_second"))
	assert.InDelta(t, 1.5, store.GetFloat("catalog.requests_per_second"), 1e-9)
	assert.InDelta(t, 500, store.GetFloat("autosave.delay_ms"), 1e-9)
	assert.InDelta(t, 900, store.GetFloat("autosave.delay_big"), 1e-9)
	assert.True(t, store.GetBool("autosave.enabled"))
}

func TestConfigStore_WrongTypesAreZero(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("catalog.url", "https://example.test/blocks")
	_ = store.Set("autosave.delay_ms", 500)

	assert.Empty(t, store.GetString("autosave.delay_ms"))
	assert.Zero(t, store.GetInt("catalog.url"))
	assert.Zero(t, store.GetFloat("catalog.url"))
	assert.False(t, store.GetBool("catalog.url"))
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_FileOperationsAreNoops(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("storage.backend", "memory")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
	assert.Equal(t, "memory", store.GetString("storage.backend"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("autosave.delay_ms", n)
			_ = store.GetInt("autosave.delay_ms")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("autosave.delay_ms")
	assert.True(t, ok)
}
