package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := New[int](DefaultExpiration, DefaultCleanupInterval)
	c.Set("evm-1/0xAbC", 18)

	v, ok := c.Get("EVM-1/0xabc")
	assert.True(t, ok)
	assert.Equal(t, 18, v)
	assert.Equal(t, 1, c.Len())

	c.Flush()
	_, ok = c.Get("evm-1/0xabc")
	assert.False(t, ok)
}
