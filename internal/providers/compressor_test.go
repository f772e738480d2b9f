package providers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct{ data map[string][]byte }

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *mapCache) Set(key string, value []byte) { c.data[key] = value }
func (c *mapCache) Delete(key string)            { delete(c.data, key) }

type failingCompressor struct{}

func (failingCompressor) Compress([]byte) ([]byte, error)   { return nil, errors.New("no space") }
func (failingCompressor) Decompress([]byte) ([]byte, error) { return nil, errors.New("corrupt") }

func TestZstdCompressor_RoundTrip(t *testing.T) {
	z, err := NewZstdCompressor()
	require.NoError(t, err)

	payload := bytes.Repeat([]byte(`{"time":"09:00 AM","number":"42"},`), 200)
	packed, err := z.Compress(payload)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(payload))

	out, err := z.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestCompressedCache_StoresPacked(t *testing.T) {
	z, err := NewZstdCompressor()
	require.NoError(t, err)
	inner := newMapCache()
	c := NewCompressedCache(inner, z, &cacheTestLogger{})

	payload := bytes.Repeat([]byte("abc"), 500)
	c.Set("k", payload)
	assert.Less(t, len(inner.data["k"]), len(payload))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestCompressedCache_DropsUndecodable(t *testing.T) {
	inner := newMapCache()
	inner.data["k"] = []byte("garbage")
	logger := &cacheTestLogger{}
	c := NewCompressedCache(inner, failingCompressor{}, logger)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.NotContains(t, inner.data, "k")

	c.Set("k2", []byte("v"))
	assert.NotContains(t, inner.data, "k2")
	assert.Equal(t, 2, logger.warnings)
}
