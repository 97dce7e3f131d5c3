package regions

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("known region", func(t *testing.T) {
		id, ok := Lookup("mazowieckie")
		require.True(t, ok)
		assert.Equal(t, "pl7", id)
	})

	t.Run("hyphenated region", func(t *testing.T) {
		id, ok := Lookup("warminsko-mazurskie")
		require.True(t, ok)
		assert.Equal(t, "pl14", id)
	})

	t.Run("unknown region", func(t *testing.T) {
		id, ok := Lookup("totally-unknown-region")
		assert.False(t, ok)
		assert.Empty(t, id)
	})

	t.Run("lookup expects a slug", func(t *testing.T) {
		_, ok := Lookup("Mazowieckie")
		assert.False(t, ok)
	})
}

func TestRegistryIsComplete(t *testing.T) {
	assert.Equal(t, 16, Len())

	seen := make(map[string]bool)
	for i, s := range Slugs() {
		id, ok := Lookup(s)
		require.True(t, ok, s)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.Equal(t, "pl"+strconv.Itoa(i+1), id)
	}
}
