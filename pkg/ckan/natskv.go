package ckan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/opendata-io/ckan-client/internal/constants"
)

// NATSKVConfig configures the NATS JetStream KV cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL (e.g., "nats://127.0.0.1:4222").
	URL string

	// Bucket is the KV bucket name; created when it does not exist.
	Bucket string
}

// NATSKVCache stores cache entries in a NATS JetStream key-value bucket,
// letting fetched listings survive process restarts and be shared between
// processes. Keys are hashed because query signatures contain characters
// NATS KV keys do not allow.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the KV bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSConfigRequired
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	conn, err := nats.Connect(config.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %q: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

// Get retrieves an entry by key.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(kvKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading KV entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding KV entry: %w", err)
	}

	return &entry, nil
}

// Set stores an entry, overwriting any existing value under the key.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding KV entry: %w", err)
	}

	_, err = c.kv.Put(kvKey(key), data)
	if err != nil {
		return fmt.Errorf("writing KV entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Purge(kvKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("purging KV entry: %w", err)
	}

	return nil
}

// Clear removes all entries in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing KV keys: %w", err)
	}

	for _, key := range keys {
		err := c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging KV entry: %w", err)
		}
	}

	return nil
}

// Has reports whether the key exists.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.kv.Get(kvKey(key))

	return err == nil
}

// Close releases the NATS connection.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}

func kvKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}
