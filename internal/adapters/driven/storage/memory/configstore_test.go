package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("graph.base_url", "https://example.test"))

	val, ok := store.Get("graph.base_url")
	assert.True(t, ok)
	assert.Equal(t, "https://example.test", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "text")
	_ = store.Set("i", int64(7))
	_ = store.Set("f", 2.5)
	_ = store.Set("b", true)
	_ = store.Set("list", []any{"a", 1, "b"})

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 2, store.GetInt("f"))
	assert.InDelta(t, 2.5, store.GetFloat("f"), 0.0001)
	assert.InDelta(t, 7.0, store.GetFloat("i"), 0.0001)
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("list"))
	assert.Nil(t, store.GetStringSlice("s"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Duration
	}{
		{"duration string", "90s", 90 * time.Second},
		{"numeric string", "5", 5 * time.Second},
		{"int seconds", 3, 3 * time.Second},
		{"int64 seconds", int64(4), 4 * time.Second},
		{"duration value", 2 * time.Minute, 2 * time.Minute},
		{"garbage", "soon", 0},
		{"wrong type", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("d", tt.value)
			assert.Equal(t, tt.want, store.GetDuration("d"))
		})
	}

	assert.Zero(t, NewConfigStore().GetDuration("missing"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.workers", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.workers")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.workers")
	assert.True(t, ok)
}
