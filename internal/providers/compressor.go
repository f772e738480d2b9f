package providers

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// CompressedCache stores zstd-compressed payloads. Month-wide result
// listings are large and highly repetitive, so they shrink well.
type CompressedCache struct {
	inner      CacheProviderInterface
	compressor CompressorInterface
	logger     Logger
}

func (c *CompressedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		return nil, false
	}
	out, err := c.compressor.Decompress(val)
	if err != nil {
		c.logger.Warnf(TypeApp, "Dropping undecodable cache entry %s: %s", key, err)
		c.inner.Delete(key)
		return nil, false
	}
	return out, true
}

func (c *CompressedCache) Set(key string, value []byte) {
	out, err := c.compressor.Compress(value)
	if err != nil {
		c.logger.Warnf(TypeApp, "Skipping cache write for %s: %s", key, err)
		return
	}
	c.inner.Set(key, out)
}

func (c *CompressedCache) Delete(key string) {
	c.inner.Delete(key)
}

func NewCompressedCache(inner CacheProviderInterface, compressor CompressorInterface, logger Logger) CacheProviderInterface {
	return &CompressedCache{inner: inner, compressor: compressor, logger: logger}
}
