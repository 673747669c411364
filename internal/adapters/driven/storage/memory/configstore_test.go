package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"server.port": 9000},
		map[string]any{"server.host": "0.0.0.0", "server.port": 9001},
	)

	assert.Equal(t, 9001, store.GetInt("server.port"))
	assert.Equal(t, "0.0.0.0", store.GetString("server.host"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":       "value",
		"int":       42,
		"int64":     int64(7),
		"float":     2.5,
		"bool":      true,
		"slice":     []string{"a", "b"},
		"any_slice": []any{"c", 1, "d"},
		"single":    "/docs",
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "value"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 42},
		{"int64", store.GetInt("int64"), 7},
		{"int from float", store.GetInt("float"), 2},
		{"int missing", store.GetInt("missing"), 0},
		{"float", store.GetFloat("float"), 2.5},
		{"float from int", store.GetFloat("int"), 42.0},
		{"float wrong type", store.GetFloat("str"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("str"), false},
		{"slice", store.GetStringSlice("slice"), []string{"a", "b"}},
		{"any slice keeps strings", store.GetStringSlice("any_slice"), []string{"c", "d"}},
		{"single string becomes slice", store.GetStringSlice("single"), []string{"/docs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Nil(t, store.GetStringSlice("missing"))
	assert.Nil(t, store.GetStringSlice("int"))
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"paths": []string{"a"}})

	got := store.GetStringSlice("paths")
	got[0] = "changed"

	assert.Equal(t, []string{"a"}, store.GetStringSlice("paths"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
