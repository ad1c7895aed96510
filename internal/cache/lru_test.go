package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sizeOfString(s string) int64 { return int64(len(s)) }

func TestLRUResultCachePutGet(t *testing.T) {
	c := NewLRUResultCache(1024, sizeOfString)
	h1 := HashContent([]byte("cube(1);"))

	c.Put(h1, "Cube{size:1}")

	v, ok := c.Get(h1)
	assert.True(t, ok)
	assert.Equal(t, "Cube{size:1}", v)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestLRUResultCacheEvictsUnderPressure(t *testing.T) {
	c := NewLRUResultCache(10, sizeOfString)

	for i := 0; i < 5; i++ {
		h := HashContent([]byte{byte(i)})
		c.Put(h, "xxxx")
	}

	stats := c.Stats()
	assert.LessOrEqual(t, stats.CurrentSize, int64(10))
	assert.Less(t, stats.Entries, 5)
}

func TestLRUResultCacheRejectsOversizedEntry(t *testing.T) {
	c := NewLRUResultCache(4, sizeOfString)
	h := HashContent([]byte("k"))

	c.Put(h, "way too big")

	_, ok := c.Get(h)
	assert.False(t, ok)
}
